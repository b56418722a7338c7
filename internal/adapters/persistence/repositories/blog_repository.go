package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// blogRepository implements BlogRepository interface
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts a new blog post
func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

// GetByID gets a blog post by its reference
func (r *blogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List returns blog posts, newest first. An empty status returns all.
func (r *blogRepository) List(ctx context.Context, status string) ([]*models.Blog, error) {
	var blogs []*models.Blog
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&blogs).Error
	return blogs, err
}

// UpdateFields merges the given columns into the blog post
func (r *blogRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumns(fields)
	return result.RowsAffected, result.Error
}

// SetStatus overwrites the publication status
func (r *blogRepository) SetStatus(ctx context.Context, id, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected > 0, result.Error
}

// Delete removes a blog post; reports whether one existed
func (r *blogRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	return result.RowsAffected > 0, result.Error
}
