package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lostfound/internal/config"
	"lostfound/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	itemHandler *handler.ItemHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users/register", authHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.POST("/users/refresh", authHandler.Refresh)
	api.POST("/users/logout", authHandler.Logout)

	api.GET("/items", itemHandler.List)
	api.GET("/items/search", itemHandler.Search)
	api.GET("/items/:id", itemHandler.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	// Item routes
	secured.GET("/items/user/items", itemHandler.UserItems)
	secured.POST("/items/lost", itemHandler.ReportLost)
	secured.POST("/items/found", itemHandler.ReportFound)
	secured.PUT("/items/:id", itemHandler.Update)
	secured.PUT("/items/:id/resolve", itemHandler.Resolve)
	secured.DELETE("/items/:id", itemHandler.Delete)

	// Profile routes
	secured.GET("/users/me", userHandler.Me)
	secured.PUT("/users/me", userHandler.UpdateMe)

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.PUT("/notifications/read", notificationHandler.MarkRead)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
