package services

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
)

// DashboardService aggregates the admin dashboard counters
type DashboardService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.RequestRepository
	fundRepo    repositories.FundRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	requestRepo repositories.RequestRepository,
	fundRepo repositories.FundRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		fundRepo:    fundRepo,
	}
}

// AdminStats represents the admin dashboard counters
type AdminStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalRequests int64   `json:"totalRequests"`
	TotalFunding  float64 `json:"totalFunding"`
}

// GetAdminStats returns the headline counters
func (s *DashboardService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = users

	requests, err := s.requestRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalRequests = requests

	funding, err := s.fundRepo.Total(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalFunding = funding

	return stats, nil
}
