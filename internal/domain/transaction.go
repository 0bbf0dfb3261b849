package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted tender types.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
)

// ValidPaymentMethod reports whether the method is accepted.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Transaction is a committed sale. Immutable once written; the ledger is
// append-only.
type Transaction struct {
	ID            string
	ExternalKey   string
	OccurredAt    time.Time
	StaffID       string
	StaffName     string
	TotalAmount   decimal.Decimal
	PaymentMethod PaymentMethod
	Items         []TransactionItem
	CreatedAt     time.Time
}

// TransactionItem is one sold line with the price captured at sale time.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	ProductName   string
	Category      ServiceCategory
	Quantity      int
	UnitPrice     decimal.Decimal
	IsRetail      bool
}

// LineTotal is quantity times captured unit price.
func (i TransactionItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
