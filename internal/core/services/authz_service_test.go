package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/policy"
)

func seedUser(t *testing.T, users *memory.UserStore, email, role, status string) *models.User {
	t.Helper()
	u := &models.User{
		Name:   "Seed User",
		Email:  email,
		Role:   role,
		Status: status,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func TestAuthorizeRoleGate(t *testing.T) {
	users := memory.NewUserStore()
	authz := NewAuthzService(users)
	ctx := context.Background()

	seedUser(t, users, "donor@example.com", "donor", "active")
	seedUser(t, users, "admin@example.com", "admin", "active")

	if _, err := authz.Authorize(ctx, "donor@example.com", policy.OpListUsers); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("donor on admin op: err = %v, want ErrForbidden", err)
	}
	if _, err := authz.Authorize(ctx, "admin@example.com", policy.OpListUsers); err != nil {
		t.Errorf("admin on admin op: %v", err)
	}
	if _, err := authz.Authorize(ctx, "donor@example.com", policy.OpCreateRequest); err != nil {
		t.Errorf("donor on open op: %v", err)
	}
}

func TestAuthorizeBlockedAccount(t *testing.T) {
	users := memory.NewUserStore()
	authz := NewAuthzService(users)
	ctx := context.Background()

	seedUser(t, users, "blocked@example.com", "admin", "blocked")

	// Blocked beats role: even an admin loses every guarded action.
	if _, err := authz.Authorize(ctx, "blocked@example.com", policy.OpListUsers); !errors.Is(err, domain.ErrAccountBlocked) {
		t.Errorf("err = %v, want ErrAccountBlocked", err)
	}
}

func TestAuthorizeUnknownIdentity(t *testing.T) {
	users := memory.NewUserStore()
	authz := NewAuthzService(users)

	if _, err := authz.Authorize(context.Background(), "ghost@example.com", policy.OpCreateRequest); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

// A role or status change must apply on the very next check even though
// any outstanding token still carries the old claims.
func TestAuthorizeResolvesFresh(t *testing.T) {
	users := memory.NewUserStore()
	authz := NewAuthzService(users)
	ctx := context.Background()

	u := seedUser(t, users, "donor@example.com", "donor", "active")

	if _, err := authz.Authorize(ctx, u.Email, policy.OpListUsers); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("before promotion: err = %v, want ErrForbidden", err)
	}

	if _, err := users.SetRole(ctx, u.ID, "admin"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if _, err := authz.Authorize(ctx, u.Email, policy.OpListUsers); err != nil {
		t.Errorf("after promotion: %v", err)
	}

	if _, err := users.SetStatus(ctx, u.ID, "blocked"); err != nil {
		t.Fatalf("block: %v", err)
	}
	if _, err := authz.Authorize(ctx, u.Email, policy.OpListUsers); !errors.Is(err, domain.ErrAccountBlocked) {
		t.Errorf("after block: err = %v, want ErrAccountBlocked", err)
	}
}

func TestCanModify(t *testing.T) {
	authz := NewAuthzService(memory.NewUserStore())

	owner := domain.Capability{Email: "owner@example.com", Role: domain.RoleDonor, Status: domain.StatusActive}
	stranger := domain.Capability{Email: "other@example.com", Role: domain.RoleDonor, Status: domain.StatusActive}
	admin := domain.Capability{Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive}

	if err := authz.CanModify(owner, "owner@example.com"); err != nil {
		t.Errorf("owner: %v", err)
	}
	if err := authz.CanModify(admin, "owner@example.com"); err != nil {
		t.Errorf("admin: %v", err)
	}
	if err := authz.CanModify(stranger, "owner@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger: err = %v, want ErrForbidden", err)
	}
	// Empty owner fields never match.
	if err := authz.CanModify(domain.Capability{Email: ""}, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("empty owner: err = %v, want ErrForbidden", err)
	}
}
