package middleware

import (
	"context"

	"yuconz/internal/domain/auth"
	"yuconz/internal/platform/requestctx"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

// WithSession attaches the live session to the request context.
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, session)
}

// GetSession returns the live session for the request, if authenticated.
func GetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(ctxKeySession).(*auth.Session)
	return session, ok
}

// GetRequestID returns the request id assigned by RequestID.
func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
