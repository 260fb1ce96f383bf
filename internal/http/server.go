package http

import (
	"context"
	stdhttp "net/http"

	"drink-service/internal/auth"
	"drink-service/internal/config"
	"drink-service/internal/http/handler"
	"drink-service/internal/http/middleware"
	"drink-service/internal/types"
	apperrors "drink-service/pkg/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"

	msgDatabaseUnreachable = "database is unreachable"

	permissionDrinksDetail = "get:drinks-detail"
	permissionCreateDrinks = "post:drinks"
	permissionUpdateDrinks = "patch:drinks"
	permissionDeleteDrinks = "delete:drinks"
)

// HealthPinger reports whether the service's storage dependency is reachable.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

type ServerDependencies struct {
	Config         *config.Config
	DrinkRepo      handler.DrinkRepository
	AuthMiddleware *auth.Middleware
	AuditLogger    types.AuditLogger
	Health         HealthPinger

	// RateLimiter overrides the default per-identity limiter when set.
	RateLimiter *middleware.RateLimiter
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewGlobalRateLimiter()
	}
	// The limiter keys by verified token subject, so on protected routes it
	// must run inside the authorization gate, after the claims are set.
	// Public routes fall back to the client IP key.
	limit := rateLimiter.Middleware()

	drinkHandler := handler.NewDrinkHandler(deps.DrinkRepo, deps.AuditLogger)
	healthHandler := healthCheck(deps.Health)

	e.GET("/health", healthHandler, limit)

	// Public menu
	e.GET("/drinks", drinkHandler.ListDrinks, limit)

	// Protected operations. The authorization gate is the only integration
	// point between the CRUD handlers and the auth core.
	e.GET("/drinks-detail", drinkHandler.ListDrinksDetail, deps.AuthMiddleware.Require(permissionDrinksDetail), limit)
	e.POST("/drinks", drinkHandler.CreateDrink, deps.AuthMiddleware.Require(permissionCreateDrinks), limit)
	e.PATCH("/drinks/:id", drinkHandler.UpdateDrink, deps.AuthMiddleware.Require(permissionUpdateDrinks), limit)
	e.DELETE("/drinks/:id", drinkHandler.DeleteDrink, deps.AuthMiddleware.Require(permissionDeleteDrinks), limit)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// healthCheck reports readiness: the process is up and its database answers.
func healthCheck(health HealthPinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if health != nil {
			if err := health.Ping(c.Request().Context()); err != nil {
				return apperrors.Unavailable(msgDatabaseUnreachable, err)
			}
		}

		return c.JSON(stdhttp.StatusOK, map[string]string{
			jsonKeyStatus: statusOK,
		})
	}
}
