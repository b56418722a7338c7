package repositories

import (
	"context"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
)

// DonorFilter narrows user searches. Empty fields are not applied.
// Status carries the admin-search semantics: empty or "all" means no
// status constraint (the donor-facing search never sets it; the service
// forces active there).
type DonorFilter struct {
	BloodGroup string
	District   string
	Upazila    string
	Status     string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateFields merges the given columns into the record identified by
	// email and reports how many rows actually changed. A patch equal to
	// the stored values reports zero.
	UpdateFields(ctx context.Context, email string, fields map[string]interface{}) (int64, error)
	// SetStatus / SetRole are unconditional overwrites; they report
	// changed rows, so an overwrite with the stored value reports false
	// even when the record exists. Callers needing existence must
	// resolve it separately.
	SetStatus(ctx context.Context, id uint, status string) (bool, error)
	SetRole(ctx context.Context, id uint, role string) (bool, error)
	Search(ctx context.Context, filter DonorFilter) ([]*models.User, error)
	List(ctx context.Context, filter DonorFilter, offset, limit int) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

// RequestRepository defines donation request repository interface
type RequestRepository interface {
	Create(ctx context.Context, req *models.DonationRequest) error
	GetByID(ctx context.Context, id string) (*models.DonationRequest, error)
	// ListByRequester matches either of the legacy requester aliases
	// (requestedBy, requesterEmail), newest first.
	ListByRequester(ctx context.Context, email string) ([]*models.DonationRequest, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	// AcceptPending atomically swaps status pending→inprogress and stamps
	// the donor identity in the same conditional update. Returns false when
	// the request is absent or no longer pending; exactly one concurrent
	// caller can ever see true for a given request.
	AcceptPending(ctx context.Context, id, donorName, donorEmail string) (bool, error)
	// UpdateStatus is the unguarded volunteer/admin overwrite.
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.DonationRequest, int64, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]*models.DonationRequest, error)
	Count(ctx context.Context) (int64, error)
}

// FundRepository defines the append-only fund ledger interface
type FundRepository interface {
	Create(ctx context.Context, fund *models.Fund) error
	List(ctx context.Context) ([]*models.Fund, error)
	Total(ctx context.Context) (float64, error)
}

// BlogRepository defines blog repository interface
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, status string) ([]*models.Blog, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	SetStatus(ctx context.Context, id, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// LocationRepository defines the districts/upazilas master data interface
type LocationRepository interface {
	ListDistricts(ctx context.Context) ([]*models.District, error)
	ListUpazilas(ctx context.Context, districtID uint) ([]*models.Upazila, error)
}
