package handlers

import (
	"errors"
	"strings"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/pagination"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles donation request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create records a new donation request
// @Summary Create donation request
// @Description Create a donation request; it starts pending and bound to the caller
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRequestInput true "Request payload"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	email := middleware.Email(c)
	if email == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req, err := h.requestService.Create(c.Context(), email, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create donation request")
	}

	return response.Created(c, "Donation request created successfully", req)
}

// ListMine returns the caller's own requests
// @Summary List own requests
// @Description List the caller's donation requests, newest first
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email query string false "Requester email, must match the caller unless admin"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	cap, ok := middleware.Capability(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	// The email filter exists for admins; everyone else only ever sees
	// their own requests.
	email := c.Query("email", cap.Email)
	if !strings.EqualFold(email, cap.Email) && !cap.HasRole(domain.RoleAdmin) {
		return response.Forbidden(c, "You can only view your own requests")
	}

	reqs, err := h.requestService.ListMine(c.Context(), email)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation requests")
	}

	return response.Success(c, "Donation requests retrieved successfully", reqs)
}

// Get returns one request
// @Summary Get donation request
// @Description Get a donation request by its reference
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	req, err := h.requestService.Get(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid request reference")
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Donation request not found")
		default:
			return response.InternalServerError(c, "Failed to get donation request")
		}
	}

	return response.Success(c, "Donation request retrieved successfully", req)
}

// Patch merges editable fields into a request
// @Summary Update donation request
// @Description Update the descriptive fields of an owned request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference"
// @Param body body services.RequestPatch true "Request patch"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [patch]
func (h *RequestHandler) Patch(c *fiber.Ctx) error {
	cap, ok := middleware.Capability(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var patch services.RequestPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	changed, err := h.requestService.Patch(c.Context(), cap, c.Params("id"), &patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid request reference")
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Donation request not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only update your own requests")
		default:
			return response.InternalServerError(c, "Failed to update donation request")
		}
	}
	if !changed {
		return response.SoftFail(c, "No changes detected or request not found")
	}

	return response.Success(c, "Donation request updated successfully", nil)
}

// Delete removes a request
// @Summary Delete donation request
// @Description Delete an owned request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request reference"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	cap, ok := middleware.Capability(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	err := h.requestService.Delete(c.Context(), cap, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid request reference")
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Donation request not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only delete your own requests")
		default:
			return response.InternalServerError(c, "Failed to delete donation request")
		}
	}

	return response.Success(c, "Donation request deleted successfully", nil)
}

// ListAll is the back-office ledger view
// @Summary List all requests
// @Description List every donation request, newest first
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /all-requests [get]
func (h *RequestHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	reqs, meta, err := h.requestService.ListAll(c.Context(), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation requests")
	}

	return response.Success(c, "Donation requests retrieved successfully", fiber.Map{
		"requests":   reqs,
		"pagination": meta,
	})
}

// PendingBoard is the public board of open requests
// @Summary List pending requests
// @Description List all pending donation requests
// @Tags Requests
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /pending-requests [get]
func (h *RequestHandler) PendingBoard(c *fiber.Ctx) error {
	reqs, err := h.requestService.PendingBoard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending requests")
	}

	return response.Success(c, "Pending requests retrieved successfully", reqs)
}

// ListByStatus lists requests in one status
// @Summary List requests by status
// @Description List donation requests carrying the given status value
// @Tags Requests
// @Accept json
// @Produce json
// @Param status path string true "Status value"
// @Success 200 {object} response.Response
// @Router /requests/status/{status} [get]
func (h *RequestHandler) ListByStatus(c *fiber.Ctx) error {
	reqs, err := h.requestService.ListByStatus(c.Context(), c.Params("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation requests")
	}

	return response.Success(c, "Donation requests retrieved successfully", reqs)
}

// VolunteerQueue lists the requests volunteers work from
// @Summary Volunteer queue
// @Description List pending and approved donation requests
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /volunteer-requests [get]
func (h *RequestHandler) VolunteerQueue(c *fiber.Ctx) error {
	reqs, err := h.requestService.VolunteerQueue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list donation requests")
	}

	return response.Success(c, "Donation requests retrieved successfully", reqs)
}
