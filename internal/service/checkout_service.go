package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/events"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// CheckoutService runs the transaction commit sequence: header, line items,
// then retail stock decrements. Header and items are all-or-nothing via a
// compensating delete; stock decrements are best effort because a sale
// already agreed with the customer is not reversed over an inventory edge
// case.
type CheckoutService struct {
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// CheckoutDependencies bundles requirements for the checkout service.
type CheckoutDependencies struct {
	TransactionRepo repository.TransactionRepository
	ProductRepo     repository.ProductRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewCheckoutService builds the service.
func NewCheckoutService(deps CheckoutDependencies) *CheckoutService {
	return &CheckoutService{
		transactions: deps.TransactionRepo,
		products:     deps.ProductRepo,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
	}
}

// CheckoutLine is one requested cart line.
type CheckoutLine struct {
	ProductID string
	Quantity  int
}

// Commit validates the cart and persists the sale on behalf of the staff
// member at the register.
func (s *CheckoutService) Commit(ctx context.Context, staff *domain.StaffMember, lines []CheckoutLine, method domain.PaymentMethod) (*domain.Transaction, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewEmptyCart()
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, apperrors.NewInvalidLine("unknown payment method", map[string]any{"payment_method": method})
	}

	cart, err := s.resolveCart(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tx := &domain.Transaction{
		ExternalKey:   generateReceiptKey(),
		OccurredAt:    now,
		StaffID:       staff.ID,
		StaffName:     staff.Name,
		TotalAmount:   domain.CartTotal(cart),
		PaymentMethod: method,
	}
	if err := s.transactions.CreateHeader(ctx, tx); err != nil {
		s.logger.Error("failed to write transaction header", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	items := make([]domain.TransactionItem, 0, len(cart))
	for _, line := range cart {
		items = append(items, domain.TransactionItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Category:    line.Product.Category,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			IsRetail:    line.Product.IsRetail,
		})
	}
	if err := s.transactions.CreateItems(ctx, tx.ID, items); err != nil {
		// No partial sale may remain visible with missing line items.
		if delErr := s.transactions.DeleteHeader(ctx, tx.ID); delErr != nil {
			s.logger.Error("failed to compensate transaction header",
				zap.String("transaction_id", tx.ID), zap.Error(delErr))
		}
		s.logger.Error("failed to write transaction items",
			zap.String("transaction_id", tx.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	tx.Items = items

	// The sale is committed from here on. Stock corrections after a failed
	// decrement are a manual follow-up, never a rollback.
	for _, line := range cart {
		if !line.Product.IsRetail {
			continue
		}
		if err := s.products.DecrementStock(ctx, line.Product.ID, line.Quantity); err != nil {
			s.logger.Warn("stock decrement failed, inventory needs manual correction",
				zap.String("transaction_id", tx.ID),
				zap.String("product_id", line.Product.ID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
			continue
		}
		s.notifyIfLow(ctx, line.Product.ID)
	}

	s.publishRecorded(ctx, tx)
	return tx, nil
}

// Get loads one transaction with its line items.
func (s *CheckoutService) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", map[string]any{"id": id})
		}
		s.logger.Error("failed to load transaction", zap.String("transaction_id", id), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return tx, nil
}

// List returns transaction history matching the filter.
func (s *CheckoutService) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list transactions", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return txs, nil
}

// resolveCart loads each product at its current catalog price and validates
// line quantities and prices.
func (s *CheckoutService) resolveCart(ctx context.Context, lines []CheckoutLine) ([]domain.CartLine, error) {
	cart := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperrors.NewInvalidLine("quantity must be at least 1",
				map[string]any{"product_id": line.ProductID, "quantity": line.Quantity})
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewInvalidLine("unknown product",
					map[string]any{"product_id": line.ProductID})
			}
			s.logger.Error("failed to load product", zap.String("product_id", line.ProductID), zap.Error(err))
			return nil, apperrors.NewStorageUnavailable(err)
		}
		if product.Price.IsNegative() {
			return nil, apperrors.NewInvalidLine("price must not be negative",
				map[string]any{"product_id": line.ProductID})
		}
		cart = append(cart, domain.CartLine{Product: *product, Quantity: line.Quantity})
	}
	return cart, nil
}

func (s *CheckoutService) notifyIfLow(ctx context.Context, productID string) {
	if s.dispatcher == nil {
		return
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil || !product.LowOnStock() {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStockLow,
		Timestamp: time.Now().UTC(),
		Payload: events.StockLowPayload{
			ProductID:   product.ID,
			ProductName: product.Name,
			StockLevel:  *product.StockLevel,
			ReorderAt:   *product.MinReorderPoint,
		},
	})
}

func (s *CheckoutService) publishRecorded(ctx context.Context, tx *domain.Transaction) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTransactionRecorded,
		StaffID:   tx.StaffID,
		Timestamp: time.Now().UTC(),
		Payload: events.TransactionRecordedPayload{
			TransactionID: tx.ID,
			TotalAmount:   tx.TotalAmount.StringFixed(2),
			PaymentMethod: tx.PaymentMethod,
			LineCount:     len(tx.Items),
		},
	})
}

func generateReceiptKey() string {
	return "RCT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
