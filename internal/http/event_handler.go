package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/view"
)

type eventService interface {
	List(ctx context.Context, principal portal.Principal, filter string) ([]portal.EventListing, error)
	Register(ctx context.Context, principal portal.Principal, eventID string) (portal.Reservation, error)
	ListForUser(ctx context.Context, principal portal.Principal) ([]portal.Reservation, error)
}

type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

// List returns event listings matching the q query parameter, with each
// event's registration state computed for the caller. Works anonymously.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	filter := strings.TrimSpace(r.URL.Query().Get("q"))
	logger := h.log(r.Context(), "List", "principal_id", principal.UserID, "filter", filter)

	listings, err := h.service.List(r.Context(), principal, filter)
	if err != nil {
		logger.ErrorContext(r.Context(), "event list failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(listings)).InfoContext(r.Context(), "events listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: listings})
}

// Register creates a reservation for the event in the request path.
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := RecordIDFromContext(r.Context())
	if !ok || strings.TrimSpace(eventID) == "" {
		h.log(r.Context(), "Register", "error_kind", "bad_request").ErrorContext(r.Context(), "missing event id for registration")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Register", "principal_id", principal.UserID, "event_id", eventID)

	reservation, err := h.service.Register(r.Context(), principal, eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "event registration failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("reservation_id", reservation.ID).InfoContext(r.Context(), "event registered")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, reservationResponse{
		Reservation: toReservationDTO(reservation),
		Notice:      view.RegisteredNotice(reservation.EventName),
	})
}

// ListReservations returns the session user's reservations in insertion order.
func (h *EventHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "ListReservations", "principal_id", principal.UserID)

	reservations, err := h.service.ListForUser(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation list failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(reservations)).InfoContext(r.Context(), "reservations listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listReservationsResponse{Reservations: toReservationDTOs(reservations)})
}

type listEventsResponse struct {
	Events []portal.EventListing `json:"events"`
}

type reservationResponse struct {
	Reservation reservationDTO `json:"reservation"`
	Notice      view.Notice    `json:"notice"`
}

type listReservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type reservationDTO struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	CreatedAt string `json:"created_at"`
}

func toReservationDTO(reservation portal.Reservation) reservationDTO {
	return reservationDTO{
		ID:        reservation.ID,
		EventID:   reservation.EventID,
		EventName: reservation.EventName,
		CreatedAt: reservation.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toReservationDTOs(reservations []portal.Reservation) []reservationDTO {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}
