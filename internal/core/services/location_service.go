package services

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
)

// LocationService serves the districts/upazilas master data
type LocationService struct {
	locationRepo repositories.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(locationRepo repositories.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Districts lists all districts
func (s *LocationService) Districts(ctx context.Context) ([]*models.District, error) {
	return s.locationRepo.ListDistricts(ctx)
}

// Upazilas lists upazilas, optionally narrowed to one district
func (s *LocationService) Upazilas(ctx context.Context, districtID uint) ([]*models.Upazila, error) {
	return s.locationRepo.ListUpazilas(ctx, districtID)
}
