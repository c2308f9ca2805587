package portal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Famanien/University-Hub/internal/store"
)

// AdminService exposes the administrative panel: aggregate counts and the
// factory reset. Every method requires an admin principal.
type AdminService struct {
	kv       store.KV
	auth     *AuthService
	bookings *BookingService
	events   *EventService
	reseed   func(ctx context.Context) error
	logger   *slog.Logger
}

// NewAdminService wires dependencies for the admin service. reseed runs
// after a reset wipes the store, restoring the documented defaults.
func NewAdminService(kv store.KV, auth *AuthService, bookings *BookingService, events *EventService, reseed func(ctx context.Context) error, logger *slog.Logger) *AdminService {
	return &AdminService{
		kv:       kv,
		auth:     auth,
		bookings: bookings,
		events:   events,
		reseed:   reseed,
		logger:   defaultLogger(logger),
	}
}

func (s *AdminService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AdminService", operation, attrs...)
}

// Stats returns the aggregate counts shown on the administrative panel.
func (s *AdminService) Stats(ctx context.Context, principal Principal) (AdminStats, error) {
	if s == nil || s.kv == nil {
		return AdminStats{}, fmt.Errorf("AdminService not configured")
	}
	if !principal.Authenticated() {
		return AdminStats{}, ErrNotAuthenticated
	}
	if !principal.IsAdmin {
		return AdminStats{}, ErrUnauthorized
	}

	users, err := s.auth.UserCount(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	bookings, err := s.bookings.Count(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	reservations, err := s.events.Count(ctx)
	if err != nil {
		return AdminStats{}, err
	}

	return AdminStats{
		UserCount:        users,
		BookingCount:     bookings,
		ReservationCount: reservations,
	}, nil
}

// ClearAll wipes every stored collection and reseeds the documented
// defaults, leaving exactly the admin account. The confirm flag mirrors the
// confirmation prompt shown before the panel fires the reset. The caller's
// own session is destroyed along with everything else.
func (s *AdminService) ClearAll(ctx context.Context, principal Principal, confirm bool) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("AdminService not configured")
	}

	logger := s.loggerWith(ctx, "ClearAll", "principal_id", principal.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "factory reset failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "store reset to defaults")
	}()

	if !principal.Authenticated() {
		return ErrNotAuthenticated
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if !confirm {
		return ErrConfirmationRequired
	}

	if err = s.kv.Clear(ctx); err != nil {
		return err
	}
	if s.reseed != nil {
		return s.reseed(ctx)
	}
	return nil
}
