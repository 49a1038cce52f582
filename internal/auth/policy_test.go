package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func TestAuthorize(t *testing.T) {
	userClaims := &Claims{UserID: 1, Roles: []string{"USER"}}
	adminClaims := &Claims{UserID: 2, Roles: []string{"ADMIN", "USER"}}

	tests := []struct {
		name     string
		claims   *Claims
		required []model.RoleName
		expected error
	}{
		{"nil claims rejected before role check", nil, []model.RoleName{model.RoleAdmin}, apperrors.ErrUnauthenticated},
		{"nil claims rejected even without required roles", nil, nil, apperrors.ErrUnauthenticated},
		{"empty required set admits any valid token", userClaims, nil, nil},
		{"user denied on admin operation", userClaims, []model.RoleName{model.RoleAdmin}, apperrors.ErrForbidden},
		{"admin allowed on admin operation", adminClaims, []model.RoleName{model.RoleAdmin}, nil},
		{"any overlapping role is enough", userClaims, []model.RoleName{model.RoleAdmin, model.RoleUser}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.claims, tt.required...)
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
