package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// RequireStaff ensures the caller is an authenticated staff member of any role.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("staff member required")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller holds at least the given role.
func RequireRole(min domain.StaffRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewUnauthorized("staff member required")
		}
		if !principal.Staff.Role.AtLeast(min) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
