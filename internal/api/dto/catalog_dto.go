package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest payload for creating or replacing a catalog entry.
type ProductRequest struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	SubCategory     string          `json:"sub_category"`
	IsRetail        bool            `json:"is_retail"`
	StockLevel      *int            `json:"stock_level,omitempty"`
	MinReorderPoint *int            `json:"min_reorder_point,omitempty"`
}

// ProductResponse is the outward catalog shape.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	SubCategory     string          `json:"sub_category"`
	IsRetail        bool            `json:"is_retail"`
	StockLevel      *int            `json:"stock_level,omitempty"`
	MinReorderPoint *int            `json:"min_reorder_point,omitempty"`
	LowOnStock      bool            `json:"low_on_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
