package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Famanien/University-Hub/internal/store"
)

// Theme names a color scheme for the portal shell.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme reports whether t names a known theme.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// ThemeService persists the deployment-wide theme preference.
type ThemeService struct {
	mu     sync.Mutex
	kv     store.KV
	logger *slog.Logger
}

// NewThemeService wires dependencies for the theme service.
func NewThemeService(kv store.KV, logger *slog.Logger) *ThemeService {
	return &ThemeService{kv: kv, logger: defaultLogger(logger)}
}

func (s *ThemeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ThemeService", operation, attrs...)
}

// Theme returns the stored preference, defaulting to light when the key is
// missing or holds an unknown value.
func (s *ThemeService) Theme(ctx context.Context) (Theme, error) {
	if s == nil || s.kv == nil {
		return "", fmt.Errorf("ThemeService not configured")
	}

	theme, err := store.LoadValue[Theme](ctx, s.kv, store.KeyTheme)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ThemeLight, nil
		}
		return "", err
	}
	if !ValidTheme(theme) {
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme stores the preference.
func (s *ThemeService) SetTheme(ctx context.Context, theme Theme) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("ThemeService not configured")
	}

	logger := s.loggerWith(ctx, "SetTheme", "theme", string(theme))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "set theme failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "theme updated")
	}()

	if !ValidTheme(theme) {
		validation := &ValidationError{}
		validation.add("theme", "theme must be light or dark")
		return validation
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return store.SaveValue(ctx, s.kv, store.KeyTheme, theme)
}
