package services

import (
	"context"
	"time"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FundService handles the append-only fund ledger
type FundService struct {
	fundRepo repositories.FundRepository
	log      *zap.Logger
}

// NewFundService creates a new fund service
func NewFundService(fundRepo repositories.FundRepository, log *zap.Logger) *FundService {
	return &FundService{fundRepo: fundRepo, log: log}
}

// FundInput represents a contribution record. The contributor identity
// is not part of the input; it is stamped from the authenticated caller.
type FundInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// Record appends a contribution to the ledger under the caller's email
func (s *FundService) Record(ctx context.Context, email string, input *FundInput) (*models.Fund, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	fund := &models.Fund{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     email,
		Amount:    input.Amount,
		Date:      input.Date,
		CreatedAt: time.Now(),
	}
	if err := s.fundRepo.Create(ctx, fund); err != nil {
		return nil, err
	}
	s.log.Info("fund recorded",
		zap.String("email", fund.Email),
		zap.Float64("amount", fund.Amount))
	return fund, nil
}

// List returns the whole ledger, newest first
func (s *FundService) List(ctx context.Context) ([]*models.Fund, error) {
	return s.fundRepo.List(ctx)
}

// Total returns the sum of all contributions
func (s *FundService) Total(ctx context.Context) (float64, error) {
	return s.fundRepo.Total(ctx)
}
