package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/example/mataam/internal/handlers"
	"github.com/example/mataam/internal/metrics"
	"github.com/example/mataam/internal/middleware"
	"github.com/example/mataam/internal/rpc"
)

// Options carries what the HTTP surface needs beyond the procedure handlers.
type Options struct {
	JWTSecret string
	Users     middleware.UserLookup
	Limiter   *middleware.RateLimiter
	Handlers  handlers.Deps
}

// Register wires up all HTTP routes and returns the procedure router.
func Register(app *fiber.App, opts Options) *rpc.Router {
	router := rpc.NewRouter()
	handlers.Register(router, opts.Handlers)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": opts.Handlers.Store.Available(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/rpc", middleware.Session(opts.JWTSecret, opts.Users))
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Handler())
	}
	router.Mount(api, middleware.Caller)

	return router
}
