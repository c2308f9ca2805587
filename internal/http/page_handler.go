package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/view"
)

type pageRouter interface {
	Active() view.PageID
	Show(ctx context.Context, principal portal.Principal, id view.PageID) (view.Result, error)
}

// PageHandler exposes the page state machine: navigation activates a page
// and returns the payload its refresh hook produced.
type PageHandler struct {
	router    pageRouter
	responder responder
	logger    *slog.Logger
}

func NewPageHandler(router pageRouter, logger *slog.Logger) *PageHandler {
	base := defaultLogger(logger)
	return &PageHandler{router: router, responder: newResponder(base), logger: base}
}

func (h *PageHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PageHandler", operation, attrs...)
}

// Current reports the active page without transitioning.
func (h *PageHandler) Current(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.router == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, currentPageResponse{Page: h.router.Active()})
}

// Show transitions to the page in the request path and returns the result,
// including the redirect taken when an anonymous caller targets the account
// page.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.router == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	pageID, ok := RecordIDFromContext(r.Context())
	if !ok || strings.TrimSpace(pageID) == "" {
		h.log(r.Context(), "Show", "error_kind", "bad_request").ErrorContext(r.Context(), "missing page id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Show", "principal_id", principal.UserID, "page", pageID)

	result, err := h.router.Show(r.Context(), principal, view.PageID(pageID))
	if err != nil {
		logger.ErrorContext(r.Context(), "page transition failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("active_page", string(result.Page), "redirected", result.Redirected).InfoContext(r.Context(), "page shown")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, result)
}

type currentPageResponse struct {
	Page view.PageID `json:"page"`
}
