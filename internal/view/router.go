package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Famanien/University-Hub/internal/portal"
)

// PageID names a logical page of the portal.
type PageID string

const (
	PageHub      PageID = "hub"
	PageRooms    PageID = "rooms"
	PageEvents   PageID = "events"
	PageAccount  PageID = "account"
	PageTools    PageID = "tools"
	PageLogin    PageID = "login"
	PageRegister PageID = "register"
)

// ErrUnknownPage is returned when a transition targets a page that was never
// registered.
var ErrUnknownPage = errors.New("view: unknown page")

// RefreshFunc loads the data a page renders. It runs synchronously inside
// the transition, so the returned payload reflects the store at show time.
type RefreshFunc func(ctx context.Context, principal portal.Principal) (any, error)

// Result describes a completed page transition. Requested is the page the
// caller asked for; Page is the one actually activated, which differs only
// when a guarded transition redirected.
type Result struct {
	Requested  PageID `json:"requested"`
	Page       PageID `json:"page"`
	Redirected bool   `json:"redirected"`
	Data       any    `json:"data,omitempty"`
}

// Router is the page state machine: exactly one page is active at a time,
// and activating a page runs its refresh hook before the transition returns.
// It mediates visibility only; page data stays with the services behind the
// refresh hooks.
type Router struct {
	mu     sync.Mutex
	active PageID
	pages  map[PageID]RefreshFunc
	logger *slog.Logger
}

// NewRouter builds a router with the hub active, matching the initial state
// on load. Pages are registered separately via Register.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		active: PageHub,
		pages:  make(map[PageID]RefreshFunc),
		logger: logger,
	}
}

// Register binds a page to its refresh hook. A nil refresh is allowed for
// pages that render static content.
func (r *Router) Register(id PageID, refresh RefreshFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[id] = refresh
}

// Active returns the currently active page.
func (r *Router) Active() PageID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Show transitions to the requested page and runs its refresh hook. The
// account page redirects to login when no session is active; that is a
// guarded transition, not an error. A refresh failure leaves the previous
// page active.
func (r *Router) Show(ctx context.Context, principal portal.Principal, id PageID) (Result, error) {
	target := id
	redirected := false
	if id == PageAccount && !principal.Authenticated() {
		target = PageLogin
		redirected = true
	}

	r.mu.Lock()
	refresh, ok := r.pages[target]
	r.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}

	var data any
	if refresh != nil {
		var err error
		data, err = refresh(ctx, principal)
		if err != nil {
			r.logger.ErrorContext(ctx, "page refresh failed",
				"page", string(target),
				"error", err,
				"error_kind", portal.ErrorKind(err),
			)
			return Result{}, err
		}
	}

	r.mu.Lock()
	r.active = target
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "page shown",
		"page", string(target),
		"redirected", redirected,
	)
	return Result{Requested: id, Page: target, Redirected: redirected, Data: data}, nil
}
