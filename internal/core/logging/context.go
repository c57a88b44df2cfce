package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	sourceKey    contextKey = "source"
)

// NewSessionID returns a fresh, time-sortable identifier for one browse run.
func NewSessionID() string {
	return ulid.Make().String()
}

// WithSessionID adds a session ID to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithSource records the record source kind (sqlite, http, file) on the context.
func WithSource(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, sourceKey, kind)
}

// GetSessionID retrieves the session ID from the context.
// Returns empty string if not present.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSource retrieves the source kind from the context.
func GetSource(ctx context.Context) string {
	if kind, ok := ctx.Value(sourceKey).(string); ok {
		return kind
	}
	return ""
}
