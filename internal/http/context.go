package http

import (
	"context"
	"log/slog"

	"github.com/Famanien/University-Hub/internal/logging"
	"github.com/Famanien/University-Hub/internal/portal"
)

type contextKey string

const (
	principalContextKey contextKey = "principal"
	recordIDContextKey  contextKey = "record_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal portal.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (portal.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(portal.Principal)
	return principal, ok
}

// ContextWithRecordID injects a record identifier resolved from the request path.
func ContextWithRecordID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, recordIDContextKey, id)
}

// RecordIDFromContext extracts a record identifier previously associated with the context.
func RecordIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(recordIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a request scoped logger from the context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
