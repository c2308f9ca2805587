package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
	"github.com/Famanien/University-Hub/internal/view"
)

var (
	errBadRequestBody      = errors.New("the request body could not be parsed")
	errMissingSessionToken = errors.New("a session token is required")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := statusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps service errors onto HTTP statuses and carries the
// notice the portal shows for each failure.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	notice := view.FromError(err)

	switch {
	case errors.Is(err, portal.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrNotAuthenticated):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_REQUIRED",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrUsernameTaken):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "USERNAME_TAKEN",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrSlotConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "SLOT_CONFLICT",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrAlreadyRegistered):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "ALREADY_REGISTERED",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrConfirmationRequired):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			ErrorCode: "CONFIRMATION_REQUIRED",
			Message:   notice.Message,
			Notice:    &notice,
		})
	case errors.Is(err, portal.ErrNotFound), errors.Is(err, view.ErrUnknownPage):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: notice.Message, Notice: &notice})
	case errors.Is(err, store.ErrCorrupt):
		r.loggerFor(ctx).ErrorContext(ctx, "stored value unreadable", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "A stored value could not be read."})
	default:
		var vErr *portal.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Some fields are invalid.",
				Errors:  vErr.FieldErrors,
				Notice:  &notice,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "An internal error occurred."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "The request is not valid."
	case http.StatusUnauthorized:
		return "Authentication is required."
	case http.StatusForbidden:
		return "You are not allowed to perform this action."
	case http.StatusNotFound:
		return "The requested resource was not found."
	case http.StatusConflict:
		return "The request conflicts with the current state."
	case http.StatusUnprocessableEntity:
		return "Some fields are invalid."
	default:
		return "An internal error occurred."
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Notice    *view.Notice      `json:"notice,omitempty"`
}
