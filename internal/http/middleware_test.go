package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	portalhttp "github.com/Famanien/University-Hub/internal/http"
	"github.com/Famanien/University-Hub/internal/portal"
)

type stubValidator struct {
	principal portal.Principal
	err       error
}

func (s stubValidator) ValidateSession(ctx context.Context, token string) (portal.Principal, error) {
	if s.err != nil {
		return portal.Principal{}, s.err
	}
	return s.principal, nil
}

// probe records the principal the middleware chain delivered.
func probe(captured *portal.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := portalhttp.PrincipalFromContext(r.Context())
		*captured = principal
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithPrincipal(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("attaches the principal for a valid token", func(t *testing.T) {
		t.Parallel()

		want := portal.Principal{UserID: "user-1", Username: "mia"}
		var got portal.Principal
		handler := portalhttp.WithPrincipal(stubValidator{principal: want}, logger)(probe(&got))

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got != want {
			t.Fatalf("expected principal %#v, got %#v", want, got)
		}
	})

	t.Run("reads the token from the session cookie", func(t *testing.T) {
		t.Parallel()

		want := portal.Principal{UserID: "user-2", Username: "noah"}
		var got portal.Principal
		handler := portalhttp.WithPrincipal(stubValidator{principal: want}, logger)(probe(&got))

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "token-2"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got != want {
			t.Fatalf("expected principal %#v, got %#v", want, got)
		}
	})

	t.Run("passes through anonymously without a token", func(t *testing.T) {
		t.Parallel()

		var got portal.Principal
		handler := portalhttp.WithPrincipal(stubValidator{principal: portal.Principal{UserID: "never"}}, logger)(probe(&got))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough, got %d", rec.Code)
		}
		if got.Authenticated() {
			t.Fatalf("expected an anonymous principal, got %#v", got)
		}
	})

	t.Run("an invalid token degrades to anonymous", func(t *testing.T) {
		t.Parallel()

		var got portal.Principal
		handler := portalhttp.WithPrincipal(stubValidator{err: portal.ErrNotAuthenticated}, logger)(probe(&got))

		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected passthrough, got %d", rec.Code)
		}
		if got.Authenticated() {
			t.Fatalf("expected an anonymous principal, got %#v", got)
		}
	})
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("rejects anonymous requests", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := portalhttp.RequireSession(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account", nil))

		if called {
			t.Fatalf("the inner handler must not run")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["error_code"] != "AUTH_SESSION_REQUIRED" {
			t.Fatalf("unexpected error code %v", body["error_code"])
		}
		if body["message"] != "Please login first." {
			t.Fatalf("unexpected message %v", body["message"])
		}
	})

	t.Run("passes requests with a resolved principal", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := portalhttp.RequireSession(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/account", nil)
		ctx := portalhttp.ContextWithPrincipal(req.Context(), portal.Principal{UserID: "user-1", Username: "mia"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))

		if !called || rec.Code != http.StatusOK {
			t.Fatalf("expected the inner handler to run, called=%v code=%d", called, rec.Code)
		}
	})
}
