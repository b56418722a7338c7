package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email (exact, case-sensitive match)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// UpdateFields merges the given columns into the record identified by email.
// MySQL reports only rows whose values actually changed, which is exactly
// the "no changes detected" contract the client relies on.
func (r *userRepository) UpdateFields(ctx context.Context, email string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		UpdateColumns(fields)
	return result.RowsAffected, result.Error
}

// SetStatus overwrites the account status
func (r *userRepository) SetStatus(ctx context.Context, id uint, status string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected > 0, result.Error
}

// SetRole overwrites the user role
func (r *userRepository) SetRole(ctx context.Context, id uint, role string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("role", role)
	return result.RowsAffected > 0, result.Error
}

// Search returns all users matching the filter, unpaginated
func (r *userRepository) Search(ctx context.Context, filter DonorFilter) ([]*models.User, error) {
	var users []*models.User
	err := r.applyFilter(r.db.WithContext(ctx), filter).Find(&users).Error
	return users, err
}

// List returns users matching the filter with pagination (admin listing)
func (r *userRepository) List(ctx context.Context, filter DonorFilter, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.User{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count returns total number of users
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) applyFilter(query *gorm.DB, filter DonorFilter) *gorm.DB {
	if filter.BloodGroup != "" {
		query = query.Where("blood = ?", filter.BloodGroup)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.Upazila != "" {
		query = query.Where("upazila = ?", filter.Upazila)
	}
	if filter.Status != "" && filter.Status != domain.StatusFilterAll {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}
