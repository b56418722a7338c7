package handlers

import (
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FundHandler handles fund ledger endpoints
type FundHandler struct {
	fundService *services.FundService
}

// NewFundHandler creates a new fund handler
func NewFundHandler(fundService *services.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// Record appends a contribution
// @Summary Record contribution
// @Description Append a contribution to the fund ledger
// @Tags Funds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FundInput true "Contribution"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /funds [post]
func (h *FundHandler) Record(c *fiber.Ctx) error {
	email := middleware.Email(c)
	if email == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.FundInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fund, err := h.fundService.Record(c.Context(), email, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Amount must be positive")
		}
		return response.InternalServerError(c, "Failed to record contribution")
	}

	return response.Created(c, "Contribution recorded successfully", fund)
}

// List returns the ledger with its running total
// @Summary List contributions
// @Description List all contributions, newest first, with the ledger total
// @Tags Funds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /funds [get]
func (h *FundHandler) List(c *fiber.Ctx) error {
	funds, err := h.fundService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list contributions")
	}

	total, err := h.fundService.Total(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to total contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"funds": funds,
		"total": total,
	})
}
