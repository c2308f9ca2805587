package portal_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
	"github.com/Famanien/University-Hub/internal/store/bolt"
	"github.com/Famanien/University-Hub/internal/testfixtures"
)

func TestThemeService(t *testing.T) {
	t.Parallel()

	t.Run("defaults to light", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Theme()

		theme, err := svc.Theme(context.Background())
		if err != nil {
			t.Fatalf("Theme failed: %v", err)
		}
		if theme != portal.ThemeLight {
			t.Fatalf("expected light default, got %s", theme)
		}
	})

	t.Run("preference survives a fresh service over the same store", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		ctx := context.Background()

		if err := factory.Theme().SetTheme(ctx, portal.ThemeDark); err != nil {
			t.Fatalf("SetTheme failed: %v", err)
		}

		theme, err := factory.Theme().Theme(ctx)
		if err != nil {
			t.Fatalf("Theme failed: %v", err)
		}
		if theme != portal.ThemeDark {
			t.Fatalf("expected dark after SetTheme, got %s", theme)
		}
	})

	t.Run("preference survives a store close and reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "portal.db")
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := context.Background()

		kv, err := bolt.Open(path)
		if err != nil {
			t.Fatalf("open bolt store: %v", err)
		}
		if err := portal.NewThemeService(kv, logger).SetTheme(ctx, portal.ThemeDark); err != nil {
			t.Fatalf("SetTheme failed: %v", err)
		}
		if err := kv.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}

		reopened, err := bolt.Open(path)
		if err != nil {
			t.Fatalf("reopen bolt store: %v", err)
		}
		t.Cleanup(func() { reopened.Close() })

		theme, err := portal.NewThemeService(reopened, logger).Theme(ctx)
		if err != nil {
			t.Fatalf("Theme failed: %v", err)
		}
		if theme != portal.ThemeDark {
			t.Fatalf("expected dark to survive the reopen, got %s", theme)
		}
	})

	t.Run("rejects unknown theme names", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Theme()

		err := svc.SetTheme(context.Background(), portal.Theme("sepia"))
		var vErr *portal.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("falls back to light for a corrupted stored value", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		ctx := context.Background()

		if err := store.SaveValue(ctx, factory.KV, store.KeyTheme, "neon"); err != nil {
			t.Fatalf("SaveValue failed: %v", err)
		}

		theme, err := factory.Theme().Theme(ctx)
		if err != nil {
			t.Fatalf("Theme failed: %v", err)
		}
		if theme != portal.ThemeLight {
			t.Fatalf("expected light fallback, got %s", theme)
		}
	})
}
