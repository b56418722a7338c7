package handlers

import (
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles blog content endpoints
type BlogHandler struct {
	blogService *services.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// Published is the public feed
// @Summary List published blogs
// @Description List all published blog posts
// @Tags Blogs
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /blogs [get]
func (h *BlogHandler) Published(c *fiber.Ctx) error {
	blogs, err := h.blogService.Published(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list blogs")
	}

	return response.Success(c, "Blogs retrieved successfully", blogs)
}

// List is the back-office view with drafts
// @Summary List all blogs
// @Description List blog posts in every status, optionally filtered
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Blog status filter"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/blogs [get]
func (h *BlogHandler) List(c *fiber.Ctx) error {
	blogs, err := h.blogService.List(c.Context(), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list blogs")
	}

	return response.Success(c, "Blogs retrieved successfully", blogs)
}

// Create adds a draft post
// @Summary Create blog
// @Description Create a blog post; it starts as a draft
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BlogInput true "Blog post"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /blogs [post]
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	email := middleware.Email(c)
	if email == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.BlogInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	blog, err := h.blogService.Create(c.Context(), email, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title is required")
		}
		return response.InternalServerError(c, "Failed to create blog")
	}

	return response.Created(c, "Blog created successfully", blog)
}

// Update merges a patch into a post
// @Summary Update blog
// @Description Update the editable fields of a blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Param body body services.BlogPatch true "Blog patch"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blogs/{id} [patch]
func (h *BlogHandler) Update(c *fiber.Ctx) error {
	var patch services.BlogPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	changed, err := h.blogService.Update(c.Context(), c.Params("id"), &patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid blog id")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Blog not found")
		default:
			return response.InternalServerError(c, "Failed to update blog")
		}
	}
	if !changed {
		return response.SoftFail(c, "No changes detected")
	}

	return response.Success(c, "Blog updated successfully", nil)
}

// Publish marks a post published
// @Summary Publish blog
// @Description Publish a draft blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blogs/{id}/publish [patch]
func (h *BlogHandler) Publish(c *fiber.Ctx) error {
	return h.setStatus(c, domain.BlogPublished, "Blog published successfully")
}

// Unpublish reverts a post to draft
// @Summary Unpublish blog
// @Description Revert a published blog post to draft
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blogs/{id}/unpublish [patch]
func (h *BlogHandler) Unpublish(c *fiber.Ctx) error {
	return h.setStatus(c, domain.BlogDraft, "Blog unpublished successfully")
}

// Delete removes a post
// @Summary Delete blog
// @Description Delete a blog post
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /blogs/{id} [delete]
func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	err := h.blogService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid blog id")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Blog not found")
		default:
			return response.InternalServerError(c, "Failed to delete blog")
		}
	}

	return response.Success(c, "Blog deleted successfully", nil)
}

func (h *BlogHandler) setStatus(c *fiber.Ctx, status, message string) error {
	err := h.blogService.SetStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidReference):
			return response.BadRequest(c, "Invalid blog id")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Blog not found")
		default:
			return response.InternalServerError(c, "Failed to update blog status")
		}
	}

	return response.Success(c, message, nil)
}
