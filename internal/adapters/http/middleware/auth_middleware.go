package middleware

import (
	"errors"
	"strings"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/config"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/policy"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/jwt"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middlewares
const (
	LocalsEmail      = "email"
	LocalsCapability = "capability"
)

// AuthMiddleware authenticates the request. Only the token's identity
// (email) is taken from the claims; role and status are resolved fresh
// by Authorize below.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try cookie first
		accessToken = c.Cookies("access_token")

		// 2. Fall back to Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set identity in context
		c.Locals(LocalsEmail, claims.Email)

		return c.Next()
	}
}

// Authorize gates a route on one policy operation. The caller's role
// and status are re-read from the user directory on every request, so
// a block or a demotion applies immediately; the token only proves
// identity.
func Authorize(authz *services.AuthzService, op policy.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals(LocalsEmail).(string)
		if !ok || email == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		cap, err := authz.Authorize(c.Context(), email, op)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAccountBlocked):
				return response.Forbidden(c, "Account is blocked")
			case errors.Is(err, domain.ErrForbidden):
				return response.Forbidden(c, "You don't have permission to access this resource")
			case errors.Is(err, domain.ErrUnauthorized):
				return response.Unauthorized(c, "Unauthorized")
			default:
				return response.InternalServerError(c, "Authorization failed")
			}
		}

		c.Locals(LocalsCapability, cap)
		return c.Next()
	}
}

// Capability returns the capability stored by Authorize
func Capability(c *fiber.Ctx) (domain.Capability, bool) {
	cap, ok := c.Locals(LocalsCapability).(domain.Capability)
	return cap, ok
}

// Email returns the authenticated identity stored by AuthMiddleware
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalsEmail).(string)
	return email
}
