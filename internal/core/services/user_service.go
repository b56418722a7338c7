package services

import (
	"context"
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles user directory business logic
type UserService struct {
	userRepo repositories.UserRepository
	log      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, log *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

// ProfilePatch carries the updatable profile fields. Empty fields are
// left alone; identity fields (email, role, status) are not patchable
// through this path.
type ProfilePatch struct {
	Name       string `json:"name"`
	BloodGroup string `json:"blood"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

// SearchInput carries the public donor search filters
type SearchInput struct {
	BloodGroup string
	District   string
	Upazila    string
}

// GetByEmail returns a single profile
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile merges the patch into the profile addressed by email and
// reports whether anything actually changed. A patch identical to the
// stored values returns (false, nil); callers surface that as a soft
// failure, not an error.
func (s *UserService) UpdateProfile(ctx context.Context, email string, patch *ProfilePatch) (bool, error) {
	fields := make(map[string]interface{})
	if patch.Name != "" {
		fields["name"] = patch.Name
	}
	if patch.BloodGroup != "" {
		fields["blood"] = patch.BloodGroup
	}
	if patch.District != "" {
		fields["district"] = patch.District
	}
	if patch.Upazila != "" {
		fields["upazila"] = patch.Upazila
	}
	if patch.Avatar != "" {
		fields["avatar"] = patch.Avatar
	}
	if len(fields) == 0 {
		return false, nil
	}

	// The profile must exist; a merge against a missing row would just
	// report zero changes, which is a different contract.
	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}

	changed, err := s.userRepo.UpdateFields(ctx, email, fields)
	if err != nil {
		return false, err
	}
	return changed > 0, nil
}

// SearchDonors is the public donor lookup. Only active accounts are ever
// returned regardless of the filters supplied.
func (s *UserService) SearchDonors(ctx context.Context, input *SearchInput) ([]*models.UserResponse, error) {
	filter := repositories.DonorFilter{
		BloodGroup: input.BloodGroup,
		District:   input.District,
		Upazila:    input.Upazila,
		Status:     string(domain.StatusActive),
	}
	users, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}

// ListUsers is the admin directory view. Status narrows the list;
// empty or "all" returns every account.
func (s *UserService) ListUsers(ctx context.Context, status string, params *pagination.Params) ([]*models.UserResponse, *pagination.Meta, error) {
	filter := repositories.DonorFilter{Status: status}
	users, total, err := s.userRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}
	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	meta := pagination.GetMeta(params, total)
	return out, meta, nil
}

// SetStatus blocks or unblocks an account. Writing the status the
// account already has is a no-op, not an error.
func (s *UserService) SetStatus(ctx context.Context, id uint, status string) error {
	st := domain.UserStatus(status)
	if st != domain.StatusActive && st != domain.StatusBlocked {
		return domain.ErrInvalidStatus
	}

	// The write reports changed rows, so a zero cannot tell a missing
	// account from an unchanged one. Resolve existence first.
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	changed, err := s.userRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if changed {
		s.log.Info("user status changed", zap.Uint("id", id), zap.String("status", status))
	}
	return nil
}

// SetRole promotes or demotes an account. An existing token keeps
// working but carries no authority: every guarded request re-resolves
// the role from the directory.
func (s *UserService) SetRole(ctx context.Context, id uint, role string) error {
	if !domain.Role(role).IsValid() {
		return domain.ErrInvalidRole
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	changed, err := s.userRepo.SetRole(ctx, id, role)
	if err != nil {
		return err
	}
	if changed {
		s.log.Info("user role changed", zap.Uint("id", id), zap.String("role", role))
	}
	return nil
}
