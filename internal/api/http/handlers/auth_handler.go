package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/service"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// AuthHandler manages PIN login and credential endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.StaffID) == "" || req.PIN == "" {
		return apperrors.NewValidationError("staff_id and pin required", nil)
	}

	staff, token, expiresAt, err := h.service.Login(c.UserContext(), req.StaffID, req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Staff:     staffResponse(staff),
	}})
}

// ChangePIN POST /auth/pin/change.
func (h *AuthHandler) ChangePIN(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff member required")
	}
	var req dto.PINChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPIN == "" || req.NewPIN == "" {
		return apperrors.NewValidationError("current_pin and new_pin required", nil)
	}

	if err := h.service.ChangePIN(c.UserContext(), principal.Staff.ID, req.CurrentPIN, req.NewPIN); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff member required")
	}
	return c.JSON(fiber.Map{"data": staffResponse(principal.Staff)})
}
