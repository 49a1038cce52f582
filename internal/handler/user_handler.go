package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// UserHandler handles user lookup endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return respondError(c, apperrors.ErrUnauthenticated)
	}

	user, err := h.userService.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByID godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrUserNotFound)
	}

	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByUsername godoc
// @Summary Get user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.Response
// @Router /users/username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// List godoc
// @Summary List users
// @Description Paginated list of all users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} PageResponse
// @Failure 403 {object} errors.Response
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page := pageRequest(c)
	users, total, err := h.userService.List(c.Request().Context(), page)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, newPageResponse(responses, page, total))
}

// CheckUsername godoc
// @Summary Check username availability
// @Tags users
// @Produce json
// @Param username query string true "Username"
// @Success 200 {boolean} bool
// @Router /users/check-username [get]
func (h *UserHandler) CheckUsername(c echo.Context) error {
	available, err := h.userService.IsUsernameAvailable(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, available)
}

// CheckEmail godoc
// @Summary Check email availability
// @Tags users
// @Produce json
// @Param email query string true "Email"
// @Success 200 {boolean} bool
// @Router /users/check-email [get]
func (h *UserHandler) CheckEmail(c echo.Context) error {
	available, err := h.userService.IsEmailAvailable(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, available)
}
