package services

import (
	"context"
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlogService handles blog content business logic
type BlogService struct {
	blogRepo repositories.BlogRepository
	log      *zap.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(blogRepo repositories.BlogRepository, log *zap.Logger) *BlogService {
	return &BlogService{blogRepo: blogRepo, log: log}
}

// BlogInput represents a new blog post
type BlogInput struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content"`
}

// BlogPatch carries the editable blog fields
type BlogPatch struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content"`
}

// Create adds a new post. Every post starts as a draft; publishing is a
// separate admin-only transition.
func (s *BlogService) Create(ctx context.Context, authorEmail string, input *BlogInput) (*models.Blog, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	blog := &models.Blog{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Thumbnail:   input.Thumbnail,
		Content:     input.Content,
		AuthorEmail: authorEmail,
		Status:      domain.BlogDraft,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	s.log.Info("blog created", zap.String("id", blog.ID), zap.String("author", authorEmail))
	return blog, nil
}

// Get returns one post
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidReference
	}
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return blog, nil
}

// List returns posts, optionally narrowed by status. Empty or "all"
// returns everything; the public published feed passes "published".
func (s *BlogService) List(ctx context.Context, status string) ([]*models.Blog, error) {
	return s.blogRepo.List(ctx, status)
}

// Published is the public feed
func (s *BlogService) Published(ctx context.Context) ([]*models.Blog, error) {
	return s.blogRepo.List(ctx, domain.BlogPublished)
}

// Update merges the patch into a post and reports whether anything
// changed
func (s *BlogService) Update(ctx context.Context, id string, patch *BlogPatch) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	fields := make(map[string]interface{})
	if patch.Title != "" {
		fields["title"] = patch.Title
	}
	if patch.Thumbnail != "" {
		fields["thumbnail"] = patch.Thumbnail
	}
	if patch.Content != "" {
		fields["content"] = patch.Content
	}
	if len(fields) == 0 {
		return false, nil
	}
	changed, err := s.blogRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return false, err
	}
	return changed > 0, nil
}

// SetStatus publishes or unpublishes a post
func (s *BlogService) SetStatus(ctx context.Context, id, status string) error {
	if status != domain.BlogDraft && status != domain.BlogPublished {
		return domain.ErrInvalidStatus
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	ok, err := s.blogRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.log.Info("blog status changed", zap.String("id", id), zap.String("status", status))
	return nil
}

// Delete removes a post
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidReference
	}
	ok, err := s.blogRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
