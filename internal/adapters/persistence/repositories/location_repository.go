package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// locationRepository implements LocationRepository interface
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// ListDistricts returns all districts ordered by name
func (r *locationRepository) ListDistricts(ctx context.Context) ([]*models.District, error) {
	var districts []*models.District
	err := r.db.WithContext(ctx).Order("name ASC").Find(&districts).Error
	return districts, err
}

// ListUpazilas returns a district's upazilas ordered by name
func (r *locationRepository) ListUpazilas(ctx context.Context, districtID uint) ([]*models.Upazila, error) {
	var upazilas []*models.Upazila
	err := r.db.WithContext(ctx).
		Where("district_id = ?", districtID).
		Order("name ASC").
		Find(&upazilas).Error
	return upazilas, err
}
