package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fundRepository implements FundRepository. The fund store is the single
// source of truth; there is deliberately no in-process copy of the ledger.
type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new fund repository
func NewFundRepository(db *gorm.DB) FundRepository {
	return &fundRepository{db: db}
}

// Create appends a ledger entry
func (r *fundRepository) Create(ctx context.Context, fund *models.Fund) error {
	return r.db.WithContext(ctx).Create(fund).Error
}

// List returns all entries, newest first
func (r *fundRepository) List(ctx context.Context) ([]*models.Fund, error) {
	var funds []*models.Fund
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&funds).Error
	return funds, err
}

// Total returns the sum of all entry amounts
func (r *fundRepository) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Fund{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
