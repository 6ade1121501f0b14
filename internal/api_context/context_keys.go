package api_context

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type ctxKey int

const (
	uploadIDKey ctxKey = iota
	callerKey
)

// Caller is the identity carried by a verified bearer token.
type Caller struct {
	UserID string
	Roles  []string
}

func WithUploadID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, uploadIDKey, id)
}

// IDFromContext returns the upload ID parsed from the route.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(uploadIDKey).(uuid.UUID)
	return id, ok
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

// AuthUserIDFromContext returns the subject of the verified bearer token.
func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	c, ok := CallerFromContext(ctx)
	return c.UserID, ok && c.UserID != ""
}
