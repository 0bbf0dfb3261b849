package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	"github.com/spec-kit/salon-pos-service/internal/service"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// CheckoutHandler manages sale commit and transaction history endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
}

// NewCheckoutHandler constructs handler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: checkoutService}
}

// Checkout POST /checkout.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff member required")
	}
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	lines := make([]service.CheckoutLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.CheckoutLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	tx, err := h.service.Commit(c.UserContext(), principal.Staff, lines, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": transactionResponse(tx)})
}

// ListTransactions GET /transactions.
func (h *CheckoutHandler) ListTransactions(c *fiber.Ctx) error {
	filter := parseTransactionQuery(c)
	txs, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, transactionResponse(&txs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTransaction GET /transactions/:id.
func (h *CheckoutHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponse(tx)})
}

func parseTransactionQuery(c *fiber.Ctx) repository.TransactionFilter {
	filter := repository.TransactionFilter{}
	if staffID := strings.TrimSpace(c.Query("staff_id")); staffID != "" {
		filter.StaffID = &staffID
	}
	if from := parseTime(c.Query("from")); from != nil {
		filter.From = from
	}
	if to := parseTime(c.Query("to")); to != nil {
		filter.To = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func transactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(tx.Items))
	for _, item := range tx.Items {
		items = append(items, dto.TransactionItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    string(item.Category),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
			IsRetail:    item.IsRetail,
		})
	}
	return dto.TransactionResponse{
		ID:            tx.ID,
		ExternalKey:   tx.ExternalKey,
		OccurredAt:    tx.OccurredAt,
		StaffID:       tx.StaffID,
		StaffName:     tx.StaffName,
		TotalAmount:   tx.TotalAmount,
		PaymentMethod: string(tx.PaymentMethod),
		Items:         items,
	}
}
