package portal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/testfixtures"
)

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("registered credentials can log in", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		user, err := svc.Register(context.Background(), portal.RegisterParams{Username: "maria", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Username != "maria" {
			t.Fatalf("expected stored username maria, got %q", user.Username)
		}

		session, err := svc.Login(context.Background(), portal.LoginParams{Username: "maria", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login after Register failed: %v", err)
		}
		if session.Username != "maria" {
			t.Fatalf("expected session username maria, got %q", session.Username)
		}
		if session.UserID != user.ID {
			t.Fatalf("expected session for user %s, got %s", user.ID, session.UserID)
		}
	})

	t.Run("registration does not create a session", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		if _, err := svc.Register(context.Background(), portal.RegisterParams{Username: "noah", Password: "pw"}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		if _, err := svc.ValidateSession(context.Background(), "token-1"); !errors.Is(err, portal.ErrNotAuthenticated) {
			t.Fatalf("expected no session after registration, got %v", err)
		}
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		if _, err := svc.Register(context.Background(), portal.RegisterParams{Username: "sam", Password: "pw"}); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		if _, err := svc.Register(context.Background(), portal.RegisterParams{Username: "sam", Password: "other"}); !errors.Is(err, portal.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("rejects the seeded admin username", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		if _, err := svc.Register(context.Background(), portal.RegisterParams{Username: "admin", Password: "pw"}); !errors.Is(err, portal.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken for admin, got %v", err)
		}
	})

	t.Run("reports empty fields as validation errors", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		_, err := svc.Register(context.Background(), portal.RegisterParams{Username: "   ", Password: ""})
		var vErr *portal.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["username"]; !ok {
			t.Fatalf("expected username field error, got %#v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["password"]; !ok {
			t.Fatalf("expected password field error, got %#v", vErr.FieldErrors)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()
		testfixtures.AddUser(t, factory.KV, "lena", "correct")

		_, unknownErr := svc.Login(context.Background(), portal.LoginParams{Username: "nobody", Password: "whatever"})
		_, wrongErr := svc.Login(context.Background(), portal.LoginParams{Username: "lena", Password: "incorrect"})

		if !errors.Is(unknownErr, portal.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
		}
		if !errors.Is(wrongErr, portal.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
		}
		if unknownErr.Error() != wrongErr.Error() {
			t.Fatalf("login failures must be indistinguishable: %q vs %q", unknownErr, wrongErr)
		}
	})

	t.Run("issues a session that validates to the principal", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()
		user := testfixtures.AddUser(t, factory.KV, "omar", "pw")

		session, err := svc.Login(context.Background(), portal.LoginParams{Username: "omar", Password: "pw"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		principal, err := svc.ValidateSession(context.Background(), session.Token)
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if principal.UserID != user.ID || principal.Username != "omar" {
			t.Fatalf("unexpected principal %#v", principal)
		}
		if principal.IsAdmin {
			t.Fatalf("regular user must not be admin")
		}
	})

	t.Run("marks the admin session as admin", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()

		session, err := svc.Login(context.Background(), portal.LoginParams{Username: "admin", Password: "admin"})
		if err != nil {
			t.Fatalf("admin login failed: %v", err)
		}

		principal, err := svc.ValidateSession(context.Background(), session.Token)
		if err != nil {
			t.Fatalf("ValidateSession failed: %v", err)
		}
		if !principal.IsAdmin {
			t.Fatalf("expected admin principal, got %#v", principal)
		}
	})

	t.Run("expired sessions no longer validate", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()
		testfixtures.AddUser(t, factory.KV, "ivy", "pw")

		session, err := svc.Login(context.Background(), portal.LoginParams{Username: "ivy", Password: "pw"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		factory.Clock.Advance(25 * time.Hour)

		if _, err := svc.ValidateSession(context.Background(), session.Token); !errors.Is(err, portal.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated for expired session, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	t.Run("removes the session and is idempotent", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.Auth()
		testfixtures.AddUser(t, factory.KV, "theo", "pw")

		session, err := svc.Login(context.Background(), portal.LoginParams{Username: "theo", Password: "pw"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		if err := svc.Logout(context.Background(), session.Token); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if _, err := svc.ValidateSession(context.Background(), session.Token); !errors.Is(err, portal.ErrNotAuthenticated) {
			t.Fatalf("expected session to be gone, got %v", err)
		}
		if err := svc.Logout(context.Background(), session.Token); err != nil {
			t.Fatalf("second Logout must be a no-op, got %v", err)
		}
	})
}
