package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Famanien/University-Hub/internal/portal"
)

type adminService interface {
	Stats(ctx context.Context, principal portal.Principal) (portal.AdminStats, error)
	ClearAll(ctx context.Context, principal portal.Principal, confirm bool) error
}

// AccountHandler serves the account page: booking and reservation history
// plus the administrative panel for the admin user.
type AccountHandler struct {
	bookings  bookingService
	events    eventService
	admin     adminService
	responder responder
	logger    *slog.Logger
}

func NewAccountHandler(bookings bookingService, events eventService, admin adminService, logger *slog.Logger) *AccountHandler {
	base := defaultLogger(logger)
	return &AccountHandler{
		bookings:  bookings,
		events:    events,
		admin:     admin,
		responder: newResponder(base),
		logger:    base,
	}
}

func (h *AccountHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AccountHandler", operation, attrs...)
}

// Show returns the account page data for the session user. Admins also get
// the panel stats.
func (h *AccountHandler) Show(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bookings == nil || h.events == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Show", "principal_id", principal.UserID)

	bookings, err := h.bookings.ListForUser(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "account page load failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	reservations, err := h.events.ListForUser(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "account page load failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	resp := accountResponse{
		Username:     principal.Username,
		IsAdmin:      principal.IsAdmin,
		Bookings:     toBookingDTOs(bookings),
		Reservations: toReservationDTOs(reservations),
	}

	if principal.IsAdmin && h.admin != nil {
		stats, err := h.admin.Stats(r.Context(), principal)
		if err != nil {
			logger.ErrorContext(r.Context(), "admin stats load failed", "error", err, "error_kind", portal.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		resp.Stats = &stats
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

// Stats returns the aggregate counts for the administrative panel.
func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.admin == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Stats", "principal_id", principal.UserID)

	stats, err := h.admin.Stats(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "admin stats failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, stats)
}

// Reset wipes the entire store back to first-run state. Requires the admin
// principal and explicit confirmation; the caller's session dies with it.
func (h *AccountHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.admin == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Reset", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reset request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Reset", "principal_id", principal.UserID)

	if err := h.admin.ClearAll(r.Context(), principal, req.Confirm); err != nil {
		logger.ErrorContext(r.Context(), "factory reset failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	clearSessionCookie(w)
	logger.InfoContext(r.Context(), "store reset to defaults")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type accountResponse struct {
	Username     string             `json:"username"`
	IsAdmin      bool               `json:"is_admin"`
	Bookings     []bookingDTO       `json:"bookings"`
	Reservations []reservationDTO   `json:"reservations"`
	Stats        *portal.AdminStats `json:"stats,omitempty"`
}
