package portal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Famanien/University-Hub/internal/store"
)

// AuthService coordinates registration, login, logout, and session
// validation against the users and sessions collections.
type AuthService struct {
	mu             sync.Mutex
	kv             store.KV
	digest         CredentialDigester
	verify         CredentialVerifier
	idGenerator    func() string
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService wires dependencies for the auth service. Nil digest and
// verify fall back to the argon2id implementation.
func NewAuthService(kv store.KV, digest CredentialDigester, verify CredentialVerifier, idGenerator, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if digest == nil {
		digest = func(password string) (string, error) {
			return CreateCredentialDigest(password, DefaultArgon2idParams)
		}
	}
	if verify == nil {
		verify = VerifyCredential
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if tokenGenerator == nil {
		tokenGenerator = idGenerator
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		kv:             kv,
		digest:         digest,
		verify:         verify,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (user User, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("AuthService not configured")
		return
	}

	username := strings.TrimSpace(params.Username)
	logger := s.loggerWith(ctx, "Register", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "account registered")
	}()

	vErr := &ValidationError{}
	if username == "" {
		vErr.add("username", "username is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := store.LoadCollection[User](ctx, s.kv, store.KeyUsers)
	if err != nil {
		return User{}, err
	}

	for _, existing := range users {
		if existing.Username == username {
			err = ErrUsernameTaken
			return
		}
	}

	digest, err := s.digest(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("derive credential digest: %w", err)
	}

	user = User{
		ID:               s.idGenerator(),
		Username:         username,
		CredentialDigest: digest,
		CreatedAt:        s.now(),
	}

	if err = store.SaveCollection(ctx, s.kv, store.KeyUsers, append(users, user)); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login validates credentials and issues a persisted session. Unknown
// usernames and wrong passwords produce the same generic error.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (session Session, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("AuthService not configured")
		return
	}

	username := strings.TrimSpace(params.Username)
	logger := s.loggerWith(ctx, "Login", "username", username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", session.UserID).InfoContext(ctx, "login succeeded")
	}()

	if username == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	users, err := store.LoadCollection[User](ctx, s.kv, store.KeyUsers)
	if err != nil {
		return Session{}, err
	}

	var found *User
	for i := range users {
		if users[i].Username == username {
			found = &users[i]
			break
		}
	}
	if found == nil {
		err = ErrInvalidCredentials
		return
	}

	if err = s.verify(found.CredentialDigest, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now()
	session = Session{
		Token:     s.tokenGenerator(),
		UserID:    found.ID,
		Username:  found.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := store.LoadCollection[Session](ctx, s.kv, store.KeySessions)
	if err != nil {
		return Session{}, err
	}

	kept := make([]Session, 0, len(sessions)+1)
	for _, existing := range sessions {
		if existing.ExpiresAt.After(now) {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, session)

	if err = store.SaveCollection(ctx, s.kv, store.KeySessions, kept); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Logout removes the session for token. Unknown tokens are a no-op so logout
// is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("AuthService not configured")
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "Logout", "token_provided", trimmed != "")
	if trimmed == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := store.LoadCollection[Session](ctx, s.kv, store.KeySessions)
	if err != nil {
		logger.ErrorContext(ctx, "logout failed", "error", err)
		return err
	}

	kept := make([]Session, 0, len(sessions))
	for _, existing := range sessions {
		if existing.Token != trimmed {
			kept = append(kept, existing)
		}
	}

	if err := store.SaveCollection(ctx, s.kv, store.KeySessions, kept); err != nil {
		logger.ErrorContext(ctx, "logout failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "session cleared")
	return nil
}

// ValidateSession resolves a token to its principal. Expired or unknown
// tokens yield ErrNotAuthenticated.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (Principal, error) {
	if s == nil || s.kv == nil {
		return Principal{}, fmt.Errorf("AuthService not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Principal{}, ErrNotAuthenticated
	}

	sessions, err := store.LoadCollection[Session](ctx, s.kv, store.KeySessions)
	if err != nil {
		return Principal{}, err
	}

	now := s.now()
	for _, session := range sessions {
		if session.Token != trimmed {
			continue
		}
		if !session.ExpiresAt.After(now) {
			return Principal{}, ErrNotAuthenticated
		}
		return Principal{
			UserID:   session.UserID,
			Username: session.Username,
			IsAdmin:  session.Username == adminUsername,
		}, nil
	}

	return Principal{}, ErrNotAuthenticated
}

// UserCount returns the number of registered accounts.
func (s *AuthService) UserCount(ctx context.Context) (int, error) {
	if s == nil || s.kv == nil {
		return 0, fmt.Errorf("AuthService not configured")
	}
	users, err := store.LoadCollection[User](ctx, s.kv, store.KeyUsers)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
