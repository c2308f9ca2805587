package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/view"
)

type bookingService interface {
	Book(ctx context.Context, principal portal.Principal, input portal.BookingInput) (portal.Booking, error)
	ListForUser(ctx context.Context, principal portal.Principal) ([]portal.Booking, error)
}

type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

// Create books a room for a slot on behalf of the session user.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "principal_id", principal.UserID, "room_id", req.RoomID, "slot", req.Slot)

	booking, err := h.service.Book(r.Context(), principal, portal.BookingInput{
		RoomID: strings.TrimSpace(req.RoomID),
		Slot:   strings.TrimSpace(req.Slot),
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_id", booking.ID).InfoContext(r.Context(), "room booked")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{
		Booking: toBookingDTO(booking),
		Notice:  view.BookedNotice(),
	})
}

// List returns the session user's bookings in insertion order.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID)

	bookings, err := h.service.ListForUser(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking list failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingDTOs(bookings)})
}

// ListRooms returns the static room catalog together with the bookable
// slots, so the booking form can render its selects from one call.
func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{
		Rooms: portal.Rooms(),
		Slots: portal.Slots(),
	})
}

type bookingRequest struct {
	RoomID string `json:"room_id"`
	Slot   string `json:"slot"`
}

type bookingResponse struct {
	Booking bookingDTO  `json:"booking"`
	Notice  view.Notice `json:"notice"`
}

type listBookingsResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

type listRoomsResponse struct {
	Rooms []portal.Room `json:"rooms"`
	Slots []string      `json:"slots"`
}

type bookingDTO struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	Slot      string `json:"slot"`
	CreatedAt string `json:"created_at"`
}

func toBookingDTO(booking portal.Booking) bookingDTO {
	return bookingDTO{
		ID:        booking.ID,
		RoomID:    booking.RoomID,
		RoomName:  booking.RoomName,
		Slot:      booking.Slot,
		CreatedAt: booking.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBookingDTOs(bookings []portal.Booking) []bookingDTO {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]bookingDTO, 0, len(bookings))
	for _, booking := range bookings {
		out = append(out, toBookingDTO(booking))
	}
	return out
}
