package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/handlers"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/config"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type testEnv struct {
	app   *fiber.App
	users *memory.UserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	users := memory.NewUserStore()
	tokens := memory.NewTokenStore()
	requests := memory.NewRequestStore()
	funds := memory.NewFundStore()
	blogs := memory.NewBlogStore()
	locations := memory.NewLocationStore()

	log := zap.NewNop()
	authz := services.NewAuthzService(users)
	authService := services.NewAuthService(users, tokens, cfg, log)
	userService := services.NewUserService(users, log)
	requestService := services.NewRequestService(requests, authz, nil, log)
	fundService := services.NewFundService(funds, log)
	blogService := services.NewBlogService(blogs, log)
	dashboardService := services.NewDashboardService(users, requests, funds)
	locationService := services.NewLocationService(locations)

	h := &Handlers{
		Health:    handlers.NewHealthHandler(),
		Auth:      handlers.NewAuthHandler(authService, cfg),
		User:      handlers.NewUserHandler(userService),
		Request:   handlers.NewRequestHandler(requestService),
		Donation:  handlers.NewDonationHandler(requestService, userService),
		Fund:      handlers.NewFundHandler(fundService),
		Blog:      handlers.NewBlogHandler(blogService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Location:  handlers.NewLocationHandler(locationService),
		Authz:     authz,
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Register(app, h, cfg)

	return &testEnv{app: app, users: users}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}
	return resp, &env
}

// register creates an account and returns its access token and id.
func (e *testEnv) register(t *testing.T, email string) (string, uint) {
	t.Helper()

	resp, env := e.do(t, http.MethodPost, "/api/v1/users", "", fiber.Map{
		"name":     "User " + email,
		"email":    email,
		"password": "password123",
		"blood":    "O+",
		"district": "Dhaka",
		"upazila":  "Savar",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}

	var data struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return data.AccessToken, data.User.ID
}

// promote flips a user's role directly in the store; the outstanding
// token is untouched on purpose.
func (e *testEnv) promote(t *testing.T, id uint, role string) {
	t.Helper()
	if _, err := e.users.SetRole(context.Background(), id, role); err != nil {
		t.Fatalf("promote user %d: %v", id, err)
	}
}

func TestRegistrationConflict(t *testing.T) {
	e := newTestEnv(t)

	e.register(t, "donor@example.com")

	resp, _ := e.do(t, http.MethodPost, "/api/v1/users", "", fiber.Map{
		"name":     "Again",
		"email":    "donor@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate registration: status %d, want 409", resp.StatusCode)
	}
}

func TestLoginFailures(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "donor@example.com")

	resp, _ := e.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "donor@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", resp.StatusCode)
	}
}

func TestRoleGateOnAdminRoutes(t *testing.T) {
	e := newTestEnv(t)

	donorToken, _ := e.register(t, "donor@example.com")
	adminToken, adminID := e.register(t, "admin@example.com")
	e.promote(t, adminID, "admin")

	resp, _ := e.do(t, http.MethodGet, "/api/v1/admin/users", donorToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("donor on admin route: status %d, want 403", resp.StatusCode)
	}

	// The admin's token predates the promotion; authorization re-reads
	// the directory, so it passes anyway.
	resp, _ = e.do(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin on admin route: status %d, want 200", resp.StatusCode)
	}

	resp, _ = e.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous on admin route: status %d, want 401", resp.StatusCode)
	}
}

func TestBlockedUserLosesAccess(t *testing.T) {
	e := newTestEnv(t)

	donorToken, donorID := e.register(t, "donor@example.com")
	adminToken, adminID := e.register(t, "admin@example.com")
	e.promote(t, adminID, "admin")

	resp, _ := e.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/block/%d", donorID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("block: status %d", resp.StatusCode)
	}

	// The donor's token is still cryptographically valid but the account
	// is blocked, so every guard rejects it on the next request.
	resp, _ = e.do(t, http.MethodPost, "/api/v1/requests", donorToken, fiber.Map{"blood": "O+"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("blocked donor create: status %d, want 403", resp.StatusCode)
	}

	// Blocking again is a no-op on an account that exists; it must not
	// surface as a missing user.
	resp, _ = e.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/block/%d", donorID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("re-block: status %d, want 200", resp.StatusCode)
	}

	resp, _ = e.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/users/unblock/%d", donorID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unblock: status %d", resp.StatusCode)
	}
	resp, _ = e.do(t, http.MethodPost, "/api/v1/requests", donorToken, fiber.Map{"blood": "O+"})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("unblocked donor create: status %d, want 201", resp.StatusCode)
	}
}

func TestDonationAcceptFlow(t *testing.T) {
	e := newTestEnv(t)

	requesterToken, _ := e.register(t, "requester@example.com")
	donorToken, _ := e.register(t, "donor@example.com")

	resp, env := e.do(t, http.MethodPost, "/api/v1/requests", requesterToken, fiber.Map{
		"recipientName": "Patient",
		"blood":         "O+",
		"district":      "Dhaka",
		"hospital":      "Dhaka Medical",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create request: status %d", resp.StatusCode)
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created request: %v", err)
	}
	if created.Status != "pending" {
		t.Errorf("status = %q, want pending", created.Status)
	}

	// Open requests are public.
	resp, _ = e.do(t, http.MethodGet, "/api/v1/pending-requests", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("pending board: status %d", resp.StatusCode)
	}

	// First accept wins.
	resp, env = e.do(t, http.MethodPatch, "/api/v1/donations/start/"+created.ID, donorToken, nil)
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Fatalf("accept: status %d success %v", resp.StatusCode, env.Success)
	}

	// Second accept soft-fails at HTTP 200.
	resp, env = e.do(t, http.MethodPatch, "/api/v1/donations/start/"+created.ID, donorToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second accept: status %d", resp.StatusCode)
	}
	if env.Success {
		t.Error("second accept reported success")
	}
	if env.Message != "Request not found or already updated" {
		t.Errorf("second accept message = %q", env.Message)
	}

	// The donor stamp came from the caller's profile.
	resp, env = e.do(t, http.MethodGet, "/api/v1/requests/"+created.ID, requesterToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get request: status %d", resp.StatusCode)
	}
	var got struct {
		Status     string `json:"status"`
		DonorEmail string `json:"donorEmail"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if got.Status != "inprogress" {
		t.Errorf("status = %q, want inprogress", got.Status)
	}
	if got.DonorEmail != "donor@example.com" {
		t.Errorf("donorEmail = %q", got.DonorEmail)
	}
}

func TestProfilePatchSoftFail(t *testing.T) {
	e := newTestEnv(t)

	token, _ := e.register(t, "donor@example.com")

	// Patch equal to the stored profile: HTTP 200 with success=false.
	resp, env := e.do(t, http.MethodPatch, "/api/v1/users/donor@example.com", token, fiber.Map{
		"district": "Dhaka",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("no-op patch: status %d", resp.StatusCode)
	}
	if env.Success {
		t.Error("no-op patch reported success")
	}

	resp, env = e.do(t, http.MethodPatch, "/api/v1/users/donor@example.com", token, fiber.Map{
		"district": "Sylhet",
	})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Errorf("real patch: status %d success %v", resp.StatusCode, env.Success)
	}

	// Someone else's profile is off limits.
	otherToken, _ := e.register(t, "other@example.com")
	resp, _ = e.do(t, http.MethodPatch, "/api/v1/users/donor@example.com", otherToken, fiber.Map{
		"district": "Khulna",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign patch: status %d, want 403", resp.StatusCode)
	}
}

func TestPublicSurface(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "donor@example.com")

	for _, path := range []string{
		"/",
		"/health",
		"/api/v1/users?blood=O%2B",
		"/api/v1/users/donor@example.com",
		"/api/v1/users/role/donor@example.com",
		"/api/v1/pending-requests",
		"/api/v1/requests/status/pending",
		"/api/v1/blogs",
		"/api/v1/districts",
		"/api/v1/blood-groups",
	} {
		resp, _ := e.do(t, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: status %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestVolunteerQueueAccess(t *testing.T) {
	e := newTestEnv(t)

	donorToken, _ := e.register(t, "donor@example.com")
	volToken, volID := e.register(t, "vol@example.com")
	e.promote(t, volID, "volunteer")

	resp, _ := e.do(t, http.MethodGet, "/api/v1/volunteer-requests", donorToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("donor on volunteer queue: status %d, want 403", resp.StatusCode)
	}
	resp, _ = e.do(t, http.MethodGet, "/api/v1/volunteer-requests", volToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("volunteer on volunteer queue: status %d, want 200", resp.StatusCode)
	}

	// Status overwrite is volunteer/admin only.
	reqResp, env := e.do(t, http.MethodPost, "/api/v1/requests", donorToken, fiber.Map{"blood": "O+"})
	if reqResp.StatusCode != http.StatusCreated {
		t.Fatalf("create request: status %d", reqResp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created request: %v", err)
	}

	resp, _ = e.do(t, http.MethodPatch, "/api/v1/donations/update-status/"+created.ID, donorToken, fiber.Map{"status": "done"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("donor status overwrite: status %d, want 403", resp.StatusCode)
	}
	resp, env = e.do(t, http.MethodPatch, "/api/v1/donations/update-status/"+created.ID, volToken, fiber.Map{"status": "done"})
	if resp.StatusCode != http.StatusOK || !env.Success {
		t.Errorf("volunteer status overwrite: status %d success %v", resp.StatusCode, env.Success)
	}

	// Overwriting with the same value soft-fails.
	resp, env = e.do(t, http.MethodPatch, "/api/v1/donations/update-status/"+created.ID, volToken, fiber.Map{"status": "done"})
	if resp.StatusCode != http.StatusOK || env.Success {
		t.Errorf("repeated overwrite: status %d success %v", resp.StatusCode, env.Success)
	}
}

func TestFundIdentityFromToken(t *testing.T) {
	e := newTestEnv(t)

	token, _ := e.register(t, "donor@example.com")

	// A body-supplied email is ignored; the ledger entry carries the
	// caller's identity.
	resp, env := e.do(t, http.MethodPost, "/api/v1/funds", token, fiber.Map{
		"name":   "Donor",
		"email":  "someone-else@example.com",
		"amount": 100,
		"date":   "2026-08-31",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record fund: status %d", resp.StatusCode)
	}

	var fund struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &fund); err != nil {
		t.Fatalf("decode fund: %v", err)
	}
	if fund.Email != "donor@example.com" {
		t.Errorf("fund email = %q, want donor@example.com", fund.Email)
	}

	resp, env = e.do(t, http.MethodGet, "/api/v1/funds", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list funds: status %d", resp.StatusCode)
	}
	var ledger struct {
		Funds []struct {
			Email  string  `json:"email"`
			Amount float64 `json:"amount"`
		} `json:"funds"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &ledger); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	if len(ledger.Funds) != 1 || ledger.Funds[0].Email != "donor@example.com" {
		t.Errorf("ledger = %+v, want a single entry under donor@example.com", ledger.Funds)
	}
	if ledger.Total != 100 {
		t.Errorf("total = %v, want 100", ledger.Total)
	}
}
