package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	tokenService *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Serves the OpenAPI UI. doc.json requires the generated docs package:
	// run `swag init -g cmd/server/main.go` and blank-import the docs
	// package from cmd/server.
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/signup", authHandler.SignUp)

	api.GET("/products", productHandler.List)
	api.GET("/products/categories", productHandler.Categories)
	api.GET("/products/check-name", productHandler.CheckName)
	api.GET("/products/:id", productHandler.Get)

	api.GET("/users/check-username", userHandler.CheckUsername)
	api.GET("/users/check-email", userHandler.CheckEmail)

	// Secured routes: any valid bearer token
	secured := api.Group("", BearerToken(tokenService))

	secured.GET("/users/me", userHandler.Me)
	secured.GET("/users/username/:username", userHandler.GetByUsername)
	secured.GET("/users/:id", userHandler.GetByID)
	secured.GET("/users", userHandler.List, RequireRoles(model.RoleAdmin))

	secured.POST("/orders", orderHandler.Create)
	secured.GET("/orders/my", orderHandler.ListMine)
	secured.GET("/orders/my/:id", orderHandler.GetMine)
	secured.PUT("/orders/my/:id/cancel", orderHandler.Cancel)

	// Admin-only routes
	secured.GET("/orders", orderHandler.List, RequireRoles(model.RoleAdmin))
	secured.GET("/orders/:id", orderHandler.Get, RequireRoles(model.RoleAdmin))
	secured.PUT("/orders/:id/status", orderHandler.UpdateStatus, RequireRoles(model.RoleAdmin))

	secured.POST("/products", productHandler.Create, RequireRoles(model.RoleAdmin))
	secured.PUT("/products/:id", productHandler.Update, RequireRoles(model.RoleAdmin))
	secured.DELETE("/products/:id", productHandler.Delete, RequireRoles(model.RoleAdmin))
}

// BearerToken validates the Authorization header and stores the token's
// claims in the request context. Missing, malformed and expired tokens are
// all rejected with 401 before any handler or role check runs.
func BearerToken(tokenService *auth.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return tokenService.Validate(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			status, body := apperrors.ToResponse(apperrors.ErrUnauthenticated)
			return c.JSON(status, body)
		},
	})
}

// RequireRoles rejects requests whose token carries none of the given roles.
// It must run after BearerToken.
func RequireRoles(roles ...model.RoleName) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(handler.ClaimsContextKey).(*auth.Claims)
			if err := auth.Authorize(claims, roles...); err != nil {
				status, body := apperrors.ToResponse(err)
				return c.JSON(status, body)
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
