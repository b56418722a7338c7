package jwt

import (
	"errors"
	"testing"
)

const (
	testSecret        = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("donor@example.com", "donor", testSecret, 15)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.Email != "donor@example.com" {
		t.Errorf("email = %q, want donor@example.com", claims.Email)
	}
	if claims.Role != "donor" {
		t.Errorf("role = %q, want donor", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("donor@example.com", "donor", testSecret, 15)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken("donor@example.com", "donor", testSecret, -1)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("donor@example.com", "token-id-1", testRefreshSecret, 7)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if claims.Email != "donor@example.com" {
		t.Errorf("email = %q, want donor@example.com", claims.Email)
	}
	if claims.TokenID != "token-id-1" {
		t.Errorf("tokenID = %q, want token-id-1", claims.TokenID)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	token, err := GenerateRefreshToken("donor@example.com", "token-id-1", testRefreshSecret, 7)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err == nil {
		t.Error("refresh token validated as access token")
	}
}
