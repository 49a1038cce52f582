package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/repository"
)

// ClaimsContextKey is where the bearer-token middleware stores validated claims.
const ClaimsContextKey = "claims"

// APIResponse is the generic success/failure envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"total_elements"`
	TotalPages    int64       `json:"total_pages"`
}

func newPageResponse(content interface{}, page repository.PageRequest, total int64) PageResponse {
	page = page.Normalize()
	pages := total / int64(page.Size)
	if total%int64(page.Size) != 0 {
		pages++
	}
	return PageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// respondError translates a domain error into the boundary response shape.
func respondError(c echo.Context, err error) error {
	status, body := apperrors.ToResponse(err)
	return c.JSON(status, body)
}

// currentClaims returns the validated token claims, or nil for an
// unauthenticated request.
func currentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims
}

func pageRequest(c echo.Context) repository.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return repository.PageRequest{Page: page, Size: size}.Normalize()
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
