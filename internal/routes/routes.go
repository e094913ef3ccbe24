package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/roadwatch/roadwatch-backend/internal/config"
	"github.com/roadwatch/roadwatch-backend/internal/handlers"
	"github.com/roadwatch/roadwatch-backend/internal/middleware"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store storage.Store,
	reportHandler *handlers.ReportHandler,
	volunteerHandler *handlers.VolunteerHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Reports — citizens create and browse without an account
	api.Get("/reports", reportHandler.List)
	api.Get("/reports/stats", reportHandler.Stats)
	api.Post("/reports", reportHandler.Create)

	// Report patching is a volunteer action: valid session + active account
	api.Patch("/reports/:id",
		middleware.JWTProtected(cfg),
		middleware.ActiveVolunteer(store.Volunteers()),
		reportHandler.Patch)

	// Volunteers — the auth endpoint gets a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	api.Get("/volunteers", volunteerHandler.List)
	api.Post("/volunteers", authLimiter, volunteerHandler.Auth)
	api.Patch("/volunteers/:id", middleware.JWTProtected(cfg), volunteerHandler.Update)
	api.Delete("/volunteers/:id", middleware.JWTProtected(cfg), volunteerHandler.Delete)
}
