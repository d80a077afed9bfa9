package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/services"
)

type PriceReportHandler struct {
	reports   *services.PriceReportService
	bestPrice *services.BestPriceService
}

func NewPriceReportHandler(reports *services.PriceReportService, bestPrice *services.BestPriceService) *PriceReportHandler {
	return &PriceReportHandler{reports: reports, bestPrice: bestPrice}
}

func (h *PriceReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePriceReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reports.Submit(c.UserContext(), &req, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *PriceReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.List(c.UserContext(), dto.ListPriceReportsQuery{
		ProductIdentifier: c.Query("product_identifier"),
		StoreName:         c.Query("store_name"),
		Status:            c.Query("status"),
		Limit:             c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reports)
}

func (h *PriceReportHandler) Vote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid price report ID")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.reports.Vote(c.UserContext(), id, req.Vote)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PriceReportHandler) Review(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid price report ID")
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.reports.Review(c.UserContext(), id, req.Decision)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *PriceReportHandler) BestPrice(c *fiber.Ctx) error {
	result, err := h.bestPrice.Resolve(c.UserContext(), c.Query("product_identifier"), c.Query("store_name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
