package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/service"
)

// TerminalHandler serves the clock terminal's rotating QR token.
type TerminalHandler struct {
	tokens *service.TokenService
}

// NewTerminalHandler constructs handler.
func NewTerminalHandler(tokenService *service.TokenService) *TerminalHandler {
	return &TerminalHandler{tokens: tokenService}
}

// CurrentToken GET /terminal/token.
func (h *TerminalHandler) CurrentToken(c *fiber.Ctx) error {
	token, err := h.tokens.Current(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": terminalTokenResponse(token)})
}

// RefreshToken POST /terminal/token/refresh. Forces a new token; the
// previous one stays consumable until it expires.
func (h *TerminalHandler) RefreshToken(c *fiber.Ctx) error {
	token, err := h.tokens.Issue(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": terminalTokenResponse(token)})
}

func terminalTokenResponse(token domain.ClockToken) dto.TerminalTokenResponse {
	return dto.TerminalTokenResponse{
		Token:     token.Value,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	}
}
