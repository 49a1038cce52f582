package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/logger"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and credential verification.
type AuthService interface {
	SignUp(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error)
	SignIn(ctx context.Context, usernameOrEmail, password string) (token string, expiresIn int64, err error)
}

type authService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	tokenService *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, tokenService *auth.TokenService) AuthService {
	return &authService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		tokenService: tokenService,
	}
}

// SignUp registers a new user with a hashed password and the default USER role.
func (s *authService) SignUp(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userRole, err := s.roleRepo.FindByName(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("find default role: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    firstName,
		LastName:     lastName,
		Enabled:      true,
		Roles:        []model.Role{*userRole},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log := logger.Get()
	log.Info().Str("username", user.Username).Uint("user_id", user.ID).Msg("user registered")

	return user, nil
}

// SignIn verifies credentials and mints an access token carrying the user's
// current role set. Lookup misses and password mismatches are reported with
// the same error.
func (s *authService) SignIn(ctx context.Context, usernameOrEmail, password string) (string, int64, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("find user: %w", err)
	}

	if !user.Enabled {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.Issue(user)
	if err != nil {
		return "", 0, fmt.Errorf("issue token: %w", err)
	}

	log := logger.Get()
	log.Info().Str("username", user.Username).Msg("user authenticated")

	return token, int64(s.tokenService.Lifetime().Seconds()), nil
}
