package auth

import (
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// Authorize checks validated claims against the roles an operation requires.
// A nil claims value means the request never authenticated and is rejected
// before any role comparison. An empty required set admits any valid token.
// Otherwise the caller must hold at least one of the required roles.
func Authorize(claims *Claims, required ...model.RoleName) error {
	if claims == nil {
		return apperrors.ErrUnauthenticated
	}
	if len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if claims.HasRole(role) {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
