package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
)

// ServiceFactory builds portal services over a shared store with a
// deterministic clock and identifier sequence.
type ServiceFactory struct {
	KV          store.KV
	Clock       *Clock
	IDGenerator *IDGenerator
	Tokens      *IDGenerator
	Logger      *slog.Logger
}

// NewServiceFactory seeds an in-memory store and returns a factory over it.
func NewServiceFactory(tb testing.TB) *ServiceFactory {
	tb.Helper()

	return &ServiceFactory{
		KV:          NewMemoryStore(tb),
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Tokens:      NewIDGenerator("token"),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Auth constructs an auth service using the plain credential scheme and a
// 24 hour session TTL.
func (f *ServiceFactory) Auth() *portal.AuthService {
	return portal.NewAuthService(
		f.KV,
		PlainDigest,
		PlainVerify,
		f.IDGenerator.NextFunc(),
		f.Tokens.NextFunc(),
		f.Clock.NowFunc(),
		24*time.Hour,
		f.Logger,
	)
}

// Bookings constructs a booking service over the shared store.
func (f *ServiceFactory) Bookings() *portal.BookingService {
	return portal.NewBookingService(f.KV, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), f.Logger)
}

// Events constructs an event service over the shared store.
func (f *ServiceFactory) Events() *portal.EventService {
	return portal.NewEventService(f.KV, f.IDGenerator.NextFunc(), f.Clock.NowFunc(), f.Logger)
}

// GPA constructs a GPA service over the shared store.
func (f *ServiceFactory) GPA() *portal.GPAService {
	return portal.NewGPAService(f.KV, f.IDGenerator.NextFunc(), f.Logger)
}

// Todos constructs a to-do service over the shared store.
func (f *ServiceFactory) Todos() *portal.TodoService {
	return portal.NewTodoService(f.KV, f.IDGenerator.NextFunc(), f.Logger)
}

// Theme constructs a theme service over the shared store.
func (f *ServiceFactory) Theme() *portal.ThemeService {
	return portal.NewThemeService(f.KV, f.Logger)
}

// Admin constructs an admin service whose reseed restores the same defaults
// the factory seeded at construction.
func (f *ServiceFactory) Admin() *portal.AdminService {
	reseed := func(ctx context.Context) error {
		return portal.Seed(ctx, f.KV, portal.SeedParams{
			AdminPassword: "admin",
			Digest:        PlainDigest,
			IDGenerator:   f.IDGenerator.NextFunc(),
			Now:           f.Clock.NowFunc(),
		})
	}
	return portal.NewAdminService(f.KV, f.Auth(), f.Bookings(), f.Events(), reseed, f.Logger)
}
