package handlers

import (
	"strconv"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// bloodGroups is the fixed set offered by the search filters
var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// LocationHandler serves the location and blood group master data
type LocationHandler struct {
	locationService *services.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Districts lists all districts
// @Summary List districts
// @Description List all districts
// @Tags Locations
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /districts [get]
func (h *LocationHandler) Districts(c *fiber.Ctx) error {
	districts, err := h.locationService.Districts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list districts")
	}

	return response.Success(c, "Districts retrieved successfully", districts)
}

// Upazilas lists the upazilas of one district
// @Summary List upazilas
// @Description List the upazilas of a district
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path int true "District ID"
// @Success 200 {object} response.Response
// @Router /districts/{id}/upazilas [get]
func (h *LocationHandler) Upazilas(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid district id")
	}

	upazilas, err := h.locationService.Upazilas(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list upazilas")
	}

	return response.Success(c, "Upazilas retrieved successfully", upazilas)
}

// BloodGroups lists the supported blood groups
// @Summary List blood groups
// @Description List the blood groups accepted by the search filters
// @Tags Locations
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /blood-groups [get]
func (h *LocationHandler) BloodGroups(c *fiber.Ctx) error {
	return response.Success(c, "Blood groups retrieved successfully", bloodGroups)
}
