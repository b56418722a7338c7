package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/memory"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/config"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newTestAuthService() (*AuthService, *memory.UserStore) {
	users := memory.NewUserStore()
	tokens := memory.NewTokenStore()
	return NewAuthService(users, tokens, testConfig(), zap.NewNop()), users
}

func registerInput(email string) *RegisterInput {
	return &RegisterInput{
		Name:       "Test Donor",
		Email:      email,
		Password:   "password123",
		BloodGroup: "O+",
		District:   "Dhaka",
		Upazila:    "Savar",
	}
}

func TestRegisterDefaults(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, registerInput("donor@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if result.User.Role != string(domain.RoleDonor) {
		t.Errorf("role = %q, want donor", result.User.Role)
	}
	if result.User.Status != string(domain.StatusActive) {
		t.Errorf("status = %q, want active", result.User.Status)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected a token pair on registration")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("donor@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, registerInput("donor@example.com"))
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	input := registerInput("donor@example.com")
	input.Password = "short"
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("err = %v, want ErrWeakPassword", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("donor@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, &LoginInput{Email: "donor@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.Email != "donor@example.com" {
		t.Errorf("email = %q", result.User.Email)
	}

	_, err = svc.Login(ctx, &LoginInput{Email: "donor@example.com", Password: "wrong-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginBlockedAccount(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, registerInput("donor@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := users.SetStatus(ctx, result.User.ID, string(domain.StatusBlocked)); err != nil {
		t.Fatalf("block: %v", err)
	}

	_, err = svc.Login(ctx, &LoginInput{Email: "donor@example.com", Password: "password123"})
	if !errors.Is(err, domain.ErrAccountBlocked) {
		t.Errorf("err = %v, want ErrAccountBlocked", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, registerInput("donor@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == result.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked by rotation and must not work again.
	_, err = svc.RefreshToken(ctx, result.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("replayed refresh err = %v, want ErrTokenRevoked", err)
	}

	// The new token still works.
	if _, err := svc.RefreshToken(ctx, refreshed.RefreshToken); err != nil {
		t.Errorf("second refresh: %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, registerInput("donor@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(ctx, result.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = svc.RefreshToken(ctx, result.RefreshToken)
	if !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("err = %v, want ErrTokenRevoked", err)
	}

	// Logging out twice is fine.
	if err := svc.Logout(ctx, result.RefreshToken); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
