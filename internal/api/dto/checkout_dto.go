package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutLineRequest is one requested cart line.
type CheckoutLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest payload for committing a sale.
type CheckoutRequest struct {
	Lines         []CheckoutLineRequest `json:"lines"`
	PaymentMethod string                `json:"payment_method"`
}

// TransactionItemResponse is one sold line with its captured price.
type TransactionItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	IsRetail    bool            `json:"is_retail"`
}

// TransactionResponse is the outward sale shape.
type TransactionResponse struct {
	ID            string                    `json:"id"`
	ExternalKey   string                    `json:"external_key"`
	OccurredAt    time.Time                 `json:"occurred_at"`
	StaffID       string                    `json:"staff_id"`
	StaffName     string                    `json:"staff_name"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	PaymentMethod string                    `json:"payment_method"`
	Items         []TransactionItemResponse `json:"items"`
}
