package services

import (
	"context"
	"errors"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/policy"

	"gorm.io/gorm"
)

// AuthzService resolves capabilities and enforces the policy table.
// Role and status always come from the user directory at check time,
// never from token claims, so blocking a user or demoting a role takes
// effect on their next request even while old tokens are outstanding.
type AuthzService struct {
	userRepo repositories.UserRepository
}

// NewAuthzService creates a new authorization service
func NewAuthzService(userRepo repositories.UserRepository) *AuthzService {
	return &AuthzService{userRepo: userRepo}
}

// Resolve looks up the caller's current role and status by email.
func (s *AuthzService) Resolve(ctx context.Context, email string) (domain.Capability, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Capability{}, domain.ErrUserNotFound
		}
		return domain.Capability{}, err
	}
	return domain.Capability{
		Email:  user.Email,
		Role:   domain.Role(user.Role),
		Status: domain.UserStatus(user.Status),
	}, nil
}

// Authorize resolves the caller and checks the policy rule for op.
// Blocked accounts are rejected before the role check.
func (s *AuthzService) Authorize(ctx context.Context, email string, op policy.Operation) (domain.Capability, error) {
	cap, err := s.Resolve(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Capability{}, domain.ErrUnauthorized
		}
		return domain.Capability{}, err
	}
	if !cap.IsActive() {
		return domain.Capability{}, domain.ErrAccountBlocked
	}
	rule := policy.Lookup(op)
	if !rule.Allows(cap) && !rule.OwnerOverride {
		return domain.Capability{}, domain.ErrForbidden
	}
	return cap, nil
}

// CanModify settles owner-override operations: admins always pass, the
// resource owner passes, everyone else is forbidden.
func (s *AuthzService) CanModify(cap domain.Capability, ownerEmails ...string) error {
	if cap.HasRole(domain.RoleAdmin) {
		return nil
	}
	for _, owner := range ownerEmails {
		if owner != "" && owner == cap.Email {
			return nil
		}
	}
	return domain.ErrForbidden
}
