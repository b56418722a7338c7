package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"gorm.io/gorm"
)

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new donation request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create inserts a new donation request
func (r *requestRepository) Create(ctx context.Context, req *models.DonationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID gets a request by its reference
func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.DonationRequest, error) {
	var req models.DonationRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByRequester returns requests owned by the email, newest first.
// Both legacy requester aliases are checked.
func (r *requestRepository) ListByRequester(ctx context.Context, email string) ([]*models.DonationRequest, error) {
	var reqs []*models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("requested_by = ? OR requester_email = ?", email, email).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// UpdateFields merges the given columns into the request
func (r *requestRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DonationRequest{}).
		Where("id = ?", id).
		UpdateColumns(fields)
	return result.RowsAffected, result.Error
}

// AcceptPending is the guarded accept transition. The status check lives in
// the WHERE clause so the swap and donor stamp are one atomic statement:
// two concurrent accepts resolve to exactly one affected row.
func (r *requestRepository) AcceptPending(ctx context.Context, id, donorName, donorEmail string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DonationRequest{}).
		Where("id = ? AND status = ?", id, domain.RequestPending).
		UpdateColumns(map[string]interface{}{
			"status":      domain.RequestInProgress,
			"donor_name":  donorName,
			"donor_email": donorEmail,
		})
	return result.RowsAffected > 0, result.Error
}

// UpdateStatus is the unguarded overwrite used by volunteers/admins
func (r *requestRepository) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DonationRequest{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}

// Delete removes a request; reports whether one existed
func (r *requestRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DonationRequest{})
	return result.RowsAffected > 0, result.Error
}

// ListAll returns all requests with pagination, newest first
func (r *requestRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.DonationRequest, int64, error) {
	var reqs []*models.DonationRequest
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.DonationRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

// ListByStatus returns requests in any of the given statuses, newest first
func (r *requestRepository) ListByStatus(ctx context.Context, statuses ...string) ([]*models.DonationRequest, error) {
	var reqs []*models.DonationRequest
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// Count returns total number of requests
func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DonationRequest{}).Count(&count).Error
	return count, err
}
