package services

import (
	"context"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"

	"go.uber.org/zap"
)

func TestAdminStats(t *testing.T) {
	users := memory.NewUserStore()
	requests := memory.NewRequestStore()
	funds := memory.NewFundStore()
	ctx := context.Background()

	svc := NewDashboardService(users, requests, funds)

	stats, err := svc.GetAdminStats(ctx)
	if err != nil {
		t.Fatalf("empty stats: %v", err)
	}
	if stats.TotalUsers != 0 || stats.TotalRequests != 0 || stats.TotalFunding != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := users.Create(ctx, &models.User{Name: "U", Email: email, Role: "donor", Status: "active"}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	reqSvc := NewRequestService(requests, NewAuthzService(users), nil, zap.NewNop())
	if _, err := reqSvc.Create(ctx, "a@example.com", &CreateRequestInput{BloodGroup: "O+"}); err != nil {
		t.Fatalf("seed request: %v", err)
	}
	fundSvc := NewFundService(funds, zap.NewNop())
	if _, err := fundSvc.Record(ctx, "a@example.com", &FundInput{Amount: 500}); err != nil {
		t.Fatalf("seed fund: %v", err)
	}

	stats, err = svc.GetAdminStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("totalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalRequests != 1 {
		t.Errorf("totalRequests = %d, want 1", stats.TotalRequests)
	}
	if stats.TotalFunding != 500 {
		t.Errorf("totalFunding = %v, want 500", stats.TotalFunding)
	}
}
