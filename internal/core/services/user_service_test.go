package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/pagination"

	"go.uber.org/zap"
)

func seedDonor(t *testing.T, users *memory.UserStore, email, blood, district, status string) {
	t.Helper()
	err := users.Create(context.Background(), &models.User{
		Name:       "Donor " + email,
		Email:      email,
		BloodGroup: blood,
		District:   district,
		Upazila:    "Savar",
		Role:       "donor",
		Status:     status,
	})
	if err != nil {
		t.Fatalf("seed donor %s: %v", email, err)
	}
}

func TestSearchDonorsActiveOnly(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")
	seedDonor(t, users, "b@example.com", "O+", "Dhaka", "blocked")
	seedDonor(t, users, "c@example.com", "A+", "Dhaka", "active")

	out, err := svc.SearchDonors(ctx, &SearchInput{BloodGroup: "O+", District: "Dhaka"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d donors, want 1", len(out))
	}
	if out[0].Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", out[0].Email)
	}
}

func TestSearchDonorsNoFilters(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")
	seedDonor(t, users, "b@example.com", "B-", "Sylhet", "blocked")

	out, err := svc.SearchDonors(context.Background(), &SearchInput{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// Still active-only, even with no filters supplied.
	if len(out) != 1 {
		t.Fatalf("got %d donors, want 1", len(out))
	}
}

func TestListUsersStatusFilter(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")
	seedDonor(t, users, "b@example.com", "O+", "Dhaka", "blocked")

	params := &pagination.Params{Page: 1, Limit: 20}

	blocked, _, err := svc.ListUsers(ctx, "blocked", params)
	if err != nil {
		t.Fatalf("list blocked: %v", err)
	}
	if len(blocked) != 1 || blocked[0].Email != "b@example.com" {
		t.Errorf("blocked list = %d users", len(blocked))
	}

	// The "all" sentinel disables the status filter entirely.
	all, meta, err := svc.ListUsers(ctx, domain.StatusFilterAll, params)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all list = %d users, want 2", len(all))
	}
	if meta.Total != 2 {
		t.Errorf("total = %d, want 2", meta.Total)
	}

	// Empty status behaves the same as "all".
	empty, _, err := svc.ListUsers(ctx, "", params)
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 2 {
		t.Errorf("empty-status list = %d users, want 2", len(empty))
	}
}

func TestUpdateProfileNoChanges(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")

	// Patch equal to the stored values changes nothing.
	changed, err := svc.UpdateProfile(ctx, "a@example.com", &ProfilePatch{BloodGroup: "O+", District: "Dhaka"})
	if err != nil {
		t.Fatalf("no-op patch: %v", err)
	}
	if changed {
		t.Error("no-op patch reported a change")
	}

	// An empty patch changes nothing either.
	changed, err = svc.UpdateProfile(ctx, "a@example.com", &ProfilePatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if changed {
		t.Error("empty patch reported a change")
	}

	// A real change is reported and persisted.
	changed, err = svc.UpdateProfile(ctx, "a@example.com", &ProfilePatch{District: "Sylhet"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !changed {
		t.Error("real patch reported no change")
	}
	u, err := svc.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.District != "Sylhet" {
		t.Errorf("district = %q, want Sylhet", u.District)
	}
}

func TestUpdateProfileMissingUser(t *testing.T) {
	svc := NewUserService(memory.NewUserStore(), zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), "ghost@example.com", &ProfilePatch{Name: "Ghost"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSetStatusAndRoleValidation(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")
	u, _ := users.GetByEmail(ctx, "a@example.com")

	if err := svc.SetStatus(ctx, u.ID, "suspended"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status err = %v, want ErrInvalidStatus", err)
	}
	if err := svc.SetRole(ctx, u.ID, "superuser"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("bad role err = %v, want ErrInvalidRole", err)
	}

	if err := svc.SetStatus(ctx, u.ID, "blocked"); err != nil {
		t.Errorf("block: %v", err)
	}
	if err := svc.SetRole(ctx, u.ID, "volunteer"); err != nil {
		t.Errorf("promote: %v", err)
	}

	if err := svc.SetStatus(ctx, 9999, "blocked"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing user err = %v, want ErrUserNotFound", err)
	}
}

func TestSetStatusAndRoleIdempotent(t *testing.T) {
	users := memory.NewUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	seedDonor(t, users, "a@example.com", "O+", "Dhaka", "active")
	u, _ := users.GetByEmail(ctx, "a@example.com")

	if err := svc.SetStatus(ctx, u.ID, "blocked"); err != nil {
		t.Fatalf("block: %v", err)
	}
	// Blocking an already-blocked account succeeds without changing
	// anything; it must not read as a missing user.
	if err := svc.SetStatus(ctx, u.ID, "blocked"); err != nil {
		t.Errorf("re-block: %v", err)
	}

	if err := svc.SetRole(ctx, u.ID, "volunteer"); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if err := svc.SetRole(ctx, u.ID, "volunteer"); err != nil {
		t.Errorf("re-promote: %v", err)
	}

	got, _ := users.GetByEmail(ctx, "a@example.com")
	if got.Status != "blocked" || got.Role != "volunteer" {
		t.Errorf("status/role = %s/%s, want blocked/volunteer", got.Status, got.Role)
	}
}
