package utils

import (
	"context"

	"equipment-system/pkg/contextkeys"
	apperrors "equipment-system/pkg/errors"
)

// GetFactoryIDFromCtx returns the authenticated factory id placed in the
// context by the auth middleware.
func GetFactoryIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.FactoryIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// IsAdminFromCtx reports whether the session carries the admin claim.
func IsAdminFromCtx(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(contextkeys.IsAdminKey).(bool)
	return ok && isAdmin
}
