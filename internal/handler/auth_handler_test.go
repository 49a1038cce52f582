package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, username, email, password, firstName, lastName string) (*model.User, error) {
	args := m.Called(ctx, username, email, password, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, usernameOrEmail, password string) (string, int64, error) {
	args := m.Called(ctx, usernameOrEmail, password)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

type structValidator struct {
	v *validator.Validate
}

func (s *structValidator) Validate(i interface{}) error {
	return s.v.Struct(i)
}

func signUpContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &structValidator{v: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "successful registration",
			body: `{"username":"alice","email":"alice@example.com","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("SignUp", mock.Anything, "alice", "alice@example.com", "password123", "", "").
					Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"success":true`,
		},
		{
			name: "duplicate username",
			body: `{"username":"bob","email":"bob@example.com","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("SignUp", mock.Anything, "bob", "bob@example.com", "password123", "", "").
					Return(nil, apperrors.ErrUsernameTaken)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"message":"username is already taken"`,
		},
		{
			name: "duplicate email",
			body: `{"username":"carol","email":"taken@example.com","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("SignUp", mock.Anything, "carol", "taken@example.com", "password123", "", "").
					Return(nil, apperrors.ErrEmailTaken)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"message":"email address is already in use"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setupMock(svc)
			h := NewAuthHandler(svc)

			c, rec := signUpContext(tt.body)
			assert.NoError(t, h.SignUp(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus != http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
			svc.AssertExpectations(t)
		})
	}
}
