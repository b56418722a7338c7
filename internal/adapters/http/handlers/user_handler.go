package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/pagination"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user directory endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search handles the public donor search
// @Summary Search donors
// @Description Search active donors by blood group, district and upazila
// @Tags Users
// @Accept json
// @Produce json
// @Param blood query string false "Blood group"
// @Param district query string false "District"
// @Param upazila query string false "Upazila"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	input := &services.SearchInput{
		BloodGroup: c.Query("blood"),
		District:   c.Query("district"),
		Upazila:    c.Query("upazila"),
	}

	users, err := h.userService.SearchDonors(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to search donors")
	}

	return response.Success(c, "Donors retrieved successfully", users)
}

// List handles the admin directory listing
// @Summary List users
// @Description List all users, optionally filtered by status ("all" disables the filter)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Account status filter"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	params := pagination.GetParams(c)

	users, meta, err := h.userService.ListUsers(c.Context(), status, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users":      users,
		"pagination": meta,
	})
}

// GetByEmail returns one profile
// @Summary Get user profile
// @Description Get a user profile by email
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{email} [get]
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	user, err := h.userService.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// GetRole returns just the role of a user
// @Summary Get user role
// @Description Get the role behind an email
// @Tags Users
// @Accept json
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/role/{email} [get]
func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	email := c.Params("email")

	user, err := h.userService.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "Role retrieved successfully", fiber.Map{
		"role": user.Role,
	})
}

// UpdateProfile merges a profile patch
// @Summary Update profile
// @Description Update own profile fields; a patch equal to the stored values reports no changes
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email"
// @Param body body services.ProfilePatch true "Profile patch"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{email} [patch]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	email := c.Params("email")

	// Only the profile owner or an admin may patch it
	cap, ok := middleware.Capability(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	if !strings.EqualFold(cap.Email, email) && !cap.HasRole(domain.RoleAdmin) {
		return response.Forbidden(c, "You can only update your own profile")
	}

	var patch services.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	changed, err := h.userService.UpdateProfile(c.Context(), email, &patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}
	if !changed {
		return response.SoftFail(c, "No changes detected or user not found")
	}

	return response.Success(c, "Profile updated successfully", nil)
}

// Block blocks a user account
// @Summary Block user
// @Description Block a user; blocked accounts fail every guarded action on their next request
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/block/{id} [patch]
func (h *UserHandler) Block(c *fiber.Ctx) error {
	return h.setStatus(c, string(domain.StatusBlocked), "User blocked successfully")
}

// Unblock restores a user account
// @Summary Unblock user
// @Description Restore a blocked user to active
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/unblock/{id} [patch]
func (h *UserHandler) Unblock(c *fiber.Ctx) error {
	return h.setStatus(c, string(domain.StatusActive), "User unblocked successfully")
}

// MakeVolunteer promotes a user to volunteer
// @Summary Make volunteer
// @Description Promote a user to the volunteer role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/make-volunteer/{id} [patch]
func (h *UserHandler) MakeVolunteer(c *fiber.Ctx) error {
	return h.setRole(c, string(domain.RoleVolunteer), "User promoted to volunteer")
}

// MakeAdmin promotes a user to admin
// @Summary Make admin
// @Description Promote a user to the admin role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/make-admin/{id} [patch]
func (h *UserHandler) MakeAdmin(c *fiber.Ctx) error {
	return h.setRole(c, string(domain.RoleAdmin), "User promoted to admin")
}

func (h *UserHandler) setStatus(c *fiber.Ctx, status, message string) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.userService.SetStatus(c.Context(), uint(id), status); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update user status")
	}

	return response.Success(c, message, nil)
}

func (h *UserHandler) setRole(c *fiber.Ctx, role, message string) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	if err := h.userService.SetRole(c.Context(), uint(id), role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update user role")
	}

	return response.Success(c, message, nil)
}
