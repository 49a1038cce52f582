package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice",
		Roles: []model.Role{
			{Name: model.RoleUser},
			{Name: model.RoleModerator},
		},
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", 24*time.Hour)

	token, err := svc.Issue(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"USER", "MODERATOR"}, claims.Roles)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(testUser())
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{
			"wrong secret",
			func() string {
				other := NewTokenService("other-secret", time.Hour)
				token, _ := other.Issue(testUser())
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestClaims_HasRole(t *testing.T) {
	claims := &Claims{Roles: []string{"USER"}}

	assert.True(t, claims.HasRole(model.RoleUser))
	assert.False(t, claims.HasRole(model.RoleAdmin))
}
