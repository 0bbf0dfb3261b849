package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/salon-pos-service/internal/api/dto"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	"github.com/spec-kit/salon-pos-service/internal/service"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// CatalogHandler manages service and retail catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// CreateProduct POST /catalog.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.service.Create(c.UserContext(), productInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// ListProducts GET /catalog.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filter := parseProductQuery(c)
	products, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProduct GET /catalog/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// UpdateProduct PUT /catalog/:id.
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// DeleteProduct DELETE /catalog/:id.
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListLowStock GET /catalog/low-stock.
func (h *CatalogHandler) ListLowStock(c *fiber.Ctx) error {
	products, err := h.service.ListLowStock(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseProductQuery(c *fiber.Ctx) repository.ProductFilter {
	filter := repository.ProductFilter{}
	if categoryStr := c.Query("category"); categoryStr != "" {
		category := domain.ServiceCategory(strings.TrimSpace(categoryStr))
		filter.Category = &category
	}
	if retail := parseBoolQuery(c.Query("retail")); retail != nil && *retail {
		filter.RetailOnly = true
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 100)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:            req.Name,
		Price:           req.Price,
		Category:        domain.ServiceCategory(req.Category),
		SubCategory:     req.SubCategory,
		IsRetail:        req.IsRetail,
		StockLevel:      req.StockLevel,
		MinReorderPoint: req.MinReorderPoint,
	}
}

func productResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Price:           product.Price,
		Category:        string(product.Category),
		SubCategory:     product.SubCategory,
		IsRetail:        product.IsRetail,
		StockLevel:      product.StockLevel,
		MinReorderPoint: product.MinReorderPoint,
		LowOnStock:      product.LowOnStock(),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}
