package handlers

import (
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DonationHandler handles the donor-side transitions on requests
type DonationHandler struct {
	requestService *services.RequestService
	userService    *services.UserService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(requestService *services.RequestService, userService *services.UserService) *DonationHandler {
	return &DonationHandler{
		requestService: requestService,
		userService:    userService,
	}
}

// UpdateStatusRequest represents the status overwrite body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Start claims a pending request for the calling donor
// @Summary Start donation
// @Description Claim a pending request; of concurrent claims exactly one succeeds
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donations/start/{id} [patch]
func (h *DonationHandler) Start(c *fiber.Ctx) error {
	cap, ok := middleware.Capability(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	// The donor stamp comes from the caller's directory profile, never
	// from the request body.
	profile, err := h.userService.GetByEmail(c.Context(), cap.Email)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	err = h.requestService.Accept(c.Context(), c.Params("id"), profile.Name, profile.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid request reference")
		case errors.Is(err, domain.ErrAlreadyAssigned):
			return response.SoftFail(c, "Request not found or already updated")
		default:
			return response.InternalServerError(c, "Failed to start donation")
		}
	}

	return response.Success(c, "Donation started successfully", nil)
}

// UpdateStatus overwrites a request's status
// @Summary Update request status
// @Description Overwrite the status of a request; the value is stored as sent
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /donations/update-status/{id} [patch]
func (h *DonationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	changed, err := h.requestService.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return response.BadRequest(c, "Invalid request reference")
		}
		return response.InternalServerError(c, "Failed to update request status")
	}
	if !changed {
		return response.SoftFail(c, "No changes detected or request not found")
	}

	return response.Success(c, "Request status updated successfully", nil)
}
