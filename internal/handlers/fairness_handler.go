package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/services"
)

const maxRankProducts = 200

type FairnessHandler struct {
	fairness *services.FairnessService
}

func NewFairnessHandler(fairness *services.FairnessService) *FairnessHandler {
	return &FairnessHandler{fairness: fairness}
}

func (h *FairnessHandler) Score(c *fiber.Ctx) error {
	return c.JSON(h.fairness.Score(dto.FairnessQuery{
		Ecoscore:    c.Query("ecoscore"),
		Nutriscore:  c.Query("nutriscore"),
		Brand:       c.Query("brand"),
		ProductName: c.Query("product_name"),
	}))
}

func (h *FairnessHandler) Rank(c *fiber.Ctx) error {
	var req dto.RankRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Products) > maxRankProducts {
		return fail(c, fiber.StatusBadRequest, "At most 200 products can be ranked at once")
	}
	return c.JSON(fiber.Map{"products": h.fairness.Rank(req.Products)})
}
