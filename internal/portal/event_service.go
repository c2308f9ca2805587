package portal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Famanien/University-Hub/internal/store"
)

// EventService owns event listings and the reservation collection. Each
// (user, event) pair may hold at most one reservation; the check lives here
// rather than only in the disabled-button state the page renders.
type EventService struct {
	mu          sync.Mutex
	kv          store.KV
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEventService wires dependencies for the event service.
func NewEventService(kv store.KV, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{kv: kv, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// List returns event listings matching filter, each carrying the
// registration state for the requesting principal. The filter is a
// case-insensitive substring match against name or category; an empty filter
// matches everything. States are computed fresh on every call.
func (s *EventService) List(ctx context.Context, principal Principal, filter string) ([]EventListing, error) {
	if s == nil || s.kv == nil {
		return nil, fmt.Errorf("EventService not configured")
	}

	var reservations []Reservation
	if principal.Authenticated() {
		var err error
		reservations, err = store.LoadCollection[Reservation](ctx, s.kv, store.KeyReservations)
		if err != nil {
			return nil, err
		}
	}

	needle := strings.ToLower(strings.TrimSpace(filter))
	listings := make([]EventListing, 0, len(eventCatalog))
	for _, event := range eventCatalog {
		if needle != "" &&
			!strings.Contains(strings.ToLower(event.Name), needle) &&
			!strings.Contains(strings.ToLower(event.Category), needle) {
			continue
		}

		state := RegistrationLoginRequired
		if principal.Authenticated() {
			state = RegistrationOpen
			if hasReservation(reservations, principal.UserID, event.ID) {
				state = RegistrationRegistered
			}
		}

		listings = append(listings, EventListing{Event: event, State: state})
	}
	return listings, nil
}

// Register creates a reservation for the session user. Duplicate
// registrations are rejected here even though the page already disables the
// action, so the invariant holds regardless of how the call arrives.
func (s *EventService) Register(ctx context.Context, principal Principal, eventID string) (reservation Reservation, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("EventService not configured")
		return
	}

	logger := s.loggerWith(ctx, "Register",
		"principal_id", principal.UserID,
		"event_id", eventID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "event registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", reservation.ID).InfoContext(ctx, "event registered")
	}()

	if !principal.Authenticated() {
		err = ErrNotAuthenticated
		return
	}

	event, ok := eventByID(eventID)
	if !ok {
		err = ErrNotFound
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, err := store.LoadCollection[Reservation](ctx, s.kv, store.KeyReservations)
	if err != nil {
		return Reservation{}, err
	}

	if hasReservation(reservations, principal.UserID, event.ID) {
		err = ErrAlreadyRegistered
		return
	}

	reservation = Reservation{
		ID:        s.idGenerator(),
		UserID:    principal.UserID,
		EventID:   event.ID,
		EventName: event.Name,
		CreatedAt: s.now(),
	}

	if err = store.SaveCollection(ctx, s.kv, store.KeyReservations, append(reservations, reservation)); err != nil {
		return Reservation{}, err
	}
	return reservation, nil
}

// ListForUser returns the principal's reservations in insertion order.
func (s *EventService) ListForUser(ctx context.Context, principal Principal) ([]Reservation, error) {
	if s == nil || s.kv == nil {
		return nil, fmt.Errorf("EventService not configured")
	}
	if !principal.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	reservations, err := store.LoadCollection[Reservation](ctx, s.kv, store.KeyReservations)
	if err != nil {
		return nil, err
	}

	mine := make([]Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if reservation.UserID == principal.UserID {
			mine = append(mine, reservation)
		}
	}
	return mine, nil
}

// Count returns the total number of reservations across all users.
func (s *EventService) Count(ctx context.Context) (int, error) {
	if s == nil || s.kv == nil {
		return 0, fmt.Errorf("EventService not configured")
	}
	reservations, err := store.LoadCollection[Reservation](ctx, s.kv, store.KeyReservations)
	if err != nil {
		return 0, err
	}
	return len(reservations), nil
}

func hasReservation(reservations []Reservation, userID, eventID string) bool {
	for _, reservation := range reservations {
		if reservation.UserID == userID && reservation.EventID == eventID {
			return true
		}
	}
	return false
}
