package view_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/view"
)

func newTestRouter() *view.Router {
	r := view.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Register(view.PageHub, nil)
	r.Register(view.PageRooms, nil)
	r.Register(view.PageAccount, nil)
	r.Register(view.PageLogin, nil)
	return r
}

func TestRouter_Show(t *testing.T) {
	t.Parallel()

	t.Run("starts on the hub", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		if got := r.Active(); got != view.PageHub {
			t.Fatalf("expected hub active initially, got %s", got)
		}
	})

	t.Run("activates the requested page", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		result, err := r.Show(context.Background(), portal.Principal{}, view.PageRooms)
		if err != nil {
			t.Fatalf("Show failed: %v", err)
		}
		if result.Page != view.PageRooms || result.Redirected {
			t.Fatalf("unexpected result %#v", result)
		}
		if got := r.Active(); got != view.PageRooms {
			t.Fatalf("expected rooms active, got %s", got)
		}
	})

	t.Run("redirects anonymous account visits to login", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		result, err := r.Show(context.Background(), portal.Principal{}, view.PageAccount)
		if err != nil {
			t.Fatalf("Show failed: %v", err)
		}
		if !result.Redirected {
			t.Fatalf("expected a guarded redirect, got %#v", result)
		}
		if result.Requested != view.PageAccount || result.Page != view.PageLogin {
			t.Fatalf("unexpected result %#v", result)
		}
		if got := r.Active(); got != view.PageLogin {
			t.Fatalf("expected login active, got %s", got)
		}
	})

	t.Run("authenticated principals reach the account page", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		principal := portal.Principal{UserID: "user-1", Username: "mia"}
		result, err := r.Show(context.Background(), principal, view.PageAccount)
		if err != nil {
			t.Fatalf("Show failed: %v", err)
		}
		if result.Page != view.PageAccount || result.Redirected {
			t.Fatalf("unexpected result %#v", result)
		}
	})

	t.Run("unknown pages are rejected", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		if _, err := r.Show(context.Background(), portal.Principal{}, view.PageID("settings")); !errors.Is(err, view.ErrUnknownPage) {
			t.Fatalf("expected ErrUnknownPage, got %v", err)
		}
		if got := r.Active(); got != view.PageHub {
			t.Fatalf("failed transition must not change the active page, got %s", got)
		}
	})

	t.Run("passes the refresh payload through", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		r.Register(view.PageEvents, func(ctx context.Context, principal portal.Principal) (any, error) {
			return []string{"hackathon"}, nil
		})

		result, err := r.Show(context.Background(), portal.Principal{}, view.PageEvents)
		if err != nil {
			t.Fatalf("Show failed: %v", err)
		}
		events, ok := result.Data.([]string)
		if !ok || len(events) != 1 || events[0] != "hackathon" {
			t.Fatalf("unexpected payload %#v", result.Data)
		}
	})

	t.Run("a refresh failure leaves the previous page active", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter()
		boom := errors.New("load failed")
		r.Register(view.PageTools, func(ctx context.Context, principal portal.Principal) (any, error) {
			return nil, boom
		})

		if _, err := r.Show(context.Background(), portal.Principal{}, view.PageTools); !errors.Is(err, boom) {
			t.Fatalf("expected the refresh error, got %v", err)
		}
		if got := r.Active(); got != view.PageHub {
			t.Fatalf("expected hub still active, got %s", got)
		}
	})
}
