package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/services"
)

type RatingHandler struct {
	ratings *services.RatingService
}

func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func (h *RatingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rating, err := h.ratings.Create(c.UserContext(), &req, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

func (h *RatingHandler) List(c *fiber.Ctx) error {
	ratings, err := h.ratings.List(c.UserContext(), c.Query("product_identifier"), c.Query("store_name"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ratings)
}

func (h *RatingHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.ratings.Stats(c.UserContext(), c.Query("product_identifier"), c.Query("store_name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
