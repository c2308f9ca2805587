package portal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Famanien/University-Hub/internal/store"
)

// BookingService owns the room booking collection and its conflict rule: no
// two bookings may share a (room, slot) pair, globally.
type BookingService struct {
	mu          sync.Mutex
	kv          store.KV
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBookingService wires dependencies for the booking service.
func NewBookingService(kv store.KV, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BookingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{kv: kv, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// Book reserves a room slot for the session user. The conflict check and the
// append happen under one lock so a failed attempt leaves the collection
// untouched and no interleaved write can double-book the pair.
func (s *BookingService) Book(ctx context.Context, principal Principal, input BookingInput) (booking Booking, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("BookingService not configured")
		return
	}

	logger := s.loggerWith(ctx, "Book",
		"principal_id", principal.UserID,
		"room_id", input.RoomID,
		"slot", input.Slot,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "booking failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", booking.ID).InfoContext(ctx, "room booked")
	}()

	if !principal.Authenticated() {
		err = ErrNotAuthenticated
		return
	}

	room, ok := roomByID(input.RoomID)
	vErr := &ValidationError{}
	if !ok {
		vErr.add("room_id", "unknown room")
	}
	if !validSlot(input.Slot) {
		vErr.add("slot", "unknown time slot")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := store.LoadCollection[Booking](ctx, s.kv, store.KeyBookings)
	if err != nil {
		return Booking{}, err
	}

	for _, existing := range bookings {
		if existing.RoomID == input.RoomID && existing.Slot == input.Slot {
			err = ErrSlotConflict
			return
		}
	}

	booking = Booking{
		ID:        s.idGenerator(),
		UserID:    principal.UserID,
		RoomID:    room.ID,
		RoomName:  room.Name,
		Slot:      input.Slot,
		CreatedAt: s.now(),
	}

	if err = store.SaveCollection(ctx, s.kv, store.KeyBookings, append(bookings, booking)); err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// ListForUser returns the principal's bookings in insertion order.
func (s *BookingService) ListForUser(ctx context.Context, principal Principal) ([]Booking, error) {
	if s == nil || s.kv == nil {
		return nil, fmt.Errorf("BookingService not configured")
	}
	if !principal.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	bookings, err := store.LoadCollection[Booking](ctx, s.kv, store.KeyBookings)
	if err != nil {
		return nil, err
	}

	mine := make([]Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.UserID == principal.UserID {
			mine = append(mine, booking)
		}
	}
	return mine, nil
}

// Count returns the total number of bookings across all users.
func (s *BookingService) Count(ctx context.Context) (int, error) {
	if s == nil || s.kv == nil {
		return 0, fmt.Errorf("BookingService not configured")
	}
	bookings, err := store.LoadCollection[Booking](ctx, s.kv, store.KeyBookings)
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}
