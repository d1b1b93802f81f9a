package utils

import (
	"context"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

// WithUserID stores the authenticated caller's identifier.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok && userIDStr != ""
}
