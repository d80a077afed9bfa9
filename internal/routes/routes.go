package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/wirkaufenfair/fairprice/internal/config"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/handlers"
	"github.com/wirkaufenfair/fairprice/internal/middleware"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	PriceReport *handlers.PriceReportHandler
	Rating      *handlers.RatingHandler
	Fairness    *handlers.FairnessHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// Health stays outside the rate limiters
	api.Get("/health", h.Health.Check)

	v1 := api.Group("/v1")
	v1.Use(perIPLimiter(cfg.RateLimitPerMinute))

	// Writes get a stricter budget on top of the general one
	writes := perIPLimiter(cfg.WriteRateLimitPerMinute)

	reports := v1.Group("/price_reports")
	reports.Get("/best_price", h.PriceReport.BestPrice)
	reports.Get("/", h.PriceReport.List)
	reports.Post("/", writes, h.PriceReport.Create)
	reports.Post("/:id/vote", writes, h.PriceReport.Vote)

	ratings := v1.Group("/ratings")
	ratings.Get("/stats", h.Rating.Stats)
	ratings.Get("/", h.Rating.List)
	ratings.Post("/", writes, h.Rating.Create)

	v1.Get("/fairness", h.Fairness.Score)
	v1.Post("/fairness/rank", h.Fairness.Rank)

	admin := v1.Group("/admin", middleware.AdminRequired(cfg))
	admin.Post("/price_reports/:id/review", h.PriceReport.Review)
}

func perIPLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: true, Message: "Too many requests",
			})
		},
	})
}
