package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/events"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// CatalogService manages products and rendered services.
type CatalogService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, dispatcher: dispatcher, logger: logger}
}

// ProductInput describes a catalog entry to create or replace.
type ProductInput struct {
	Name            string
	Price           decimal.Decimal
	Category        domain.ServiceCategory
	SubCategory     string
	IsRetail        bool
	StockLevel      *int
	MinReorderPoint *int
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishChange(ctx, product.ID, "created")
	return product, nil
}

// Update replaces a catalog entry's fields.
func (s *CatalogService) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		s.logger.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishChange(ctx, id, "updated")
	return product, nil
}

// Delete removes a catalog entry. Past transaction items keep their captured
// name and price, so history survives the delete.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		s.logger.Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		return apperrors.NewStorageUnavailable(err)
	}

	s.publishChange(ctx, id, "deleted")
	return nil
}

// Get fetches one catalog entry.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		s.logger.Error("failed to load product", zap.String("product_id", id), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return product, nil
}

// List returns catalog entries matching the filter.
func (s *CatalogService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	result, err := s.products.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list catalog", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return result, nil
}

// ListLowStock returns retail items at or below their reorder point.
func (s *CatalogService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	result, err := s.products.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("failed to list low stock", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return result, nil
}

// validate enforces the retail invariant: stock fields present iff the entry
// is a retail item.
func (s *CatalogService) validate(input ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}

	if input.IsRetail {
		if input.StockLevel == nil || input.MinReorderPoint == nil {
			return nil, apperrors.NewValidationError("retail items need stock_level and min_reorder_point", nil)
		}
		if *input.StockLevel < 0 || *input.MinReorderPoint < 0 {
			return nil, apperrors.NewValidationError("stock fields must not be negative", nil)
		}
	} else if input.StockLevel != nil || input.MinReorderPoint != nil {
		return nil, apperrors.NewValidationError("stock fields only apply to retail items", nil)
	}

	return &domain.Product{
		Name:            name,
		Price:           input.Price,
		Category:        input.Category,
		SubCategory:     strings.TrimSpace(input.SubCategory),
		IsRetail:        input.IsRetail,
		StockLevel:      input.StockLevel,
		MinReorderPoint: input.MinReorderPoint,
	}, nil
}

func (s *CatalogService) publishChange(ctx context.Context, productID, change string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCatalogChanged,
		Timestamp: time.Now().UTC(),
		Payload:   events.CatalogChangedPayload{ProductID: productID, Change: change},
	})
}
