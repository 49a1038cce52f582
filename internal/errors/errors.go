package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when the username/email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated is returned when no valid token accompanies a protected request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when a valid token lacks a required role.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when a product lookup misses.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order lookup misses or the order
	// belongs to another user. Cross-user access is reported as not-found on
	// purpose, so order IDs cannot be probed for existence.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email address is already in use")
	// ErrProductNameTaken is returned when creating a product with a duplicate name.
	ErrProductNameTaken = errors.New("product name is already taken")
	// ErrEmptyOrder is returned when an order is placed with no lines.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidQuantity is returned when a line quantity is below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// InsufficientStockError reports that a product could not cover the requested
// quantity. The whole order is rolled back when this is returned.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}

// InvalidStateTransitionError reports an order status transition the state
// machine does not allow.
type InvalidStateTransitionError struct {
	From string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot cancel order with status: %s", e.From)
}

// Response is the body returned for every failed request.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPStatus maps a domain error to the status code the boundary responds with.
func HTTPStatus(err error) int {
	var stock *InsufficientStockError
	var transition *InvalidStateTransitionError
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrProductNameTaken), errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.As(err, &stock), errors.As(err, &transition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ToResponse converts an error to the boundary response shape. Internal
// failures are masked with a generic message.
func ToResponse(err error) (int, Response) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "operation failed"
	}
	return status, Response{Success: false, Message: msg}
}
