package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Famanien/University-Hub/internal/portal"
)

type themeService interface {
	Theme(ctx context.Context) (portal.Theme, error)
	SetTheme(ctx context.Context, theme portal.Theme) error
}

type ThemeHandler struct {
	service   themeService
	responder responder
	logger    *slog.Logger
}

func NewThemeHandler(service themeService, logger *slog.Logger) *ThemeHandler {
	base := defaultLogger(logger)
	return &ThemeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ThemeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ThemeHandler", operation, attrs...)
}

// Show returns the stored theme preference.
func (h *ThemeHandler) Show(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	theme, err := h.service.Theme(r.Context())
	if err != nil {
		h.log(r.Context(), "Show").ErrorContext(r.Context(), "theme load failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, themeResponse{Theme: theme})
}

// Update stores the theme preference.
func (h *ThemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode theme request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "theme", req.Theme)

	if err := h.service.SetTheme(r.Context(), portal.Theme(req.Theme)); err != nil {
		logger.ErrorContext(r.Context(), "theme update failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "theme updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, themeResponse{Theme: portal.Theme(req.Theme)})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme portal.Theme `json:"theme"`
}
