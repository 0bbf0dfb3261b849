package events

import (
	"time"

	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTransactionRecorded EventType = "transaction_recorded"
	EventAttendanceToggled   EventType = "attendance_toggled"
	EventStaffChanged        EventType = "staff_changed"
	EventCatalogChanged      EventType = "catalog_changed"
	EventStockLow            EventType = "stock_low"
)

// Event represents a domain event emitted by services. The changefeed relays
// these to UI clients, which reload the affected collection.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   string      `json:"staff_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TransactionRecordedPayload payload.
type TransactionRecordedPayload struct {
	TransactionID string               `json:"transaction_id"`
	TotalAmount   string               `json:"total_amount"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	LineCount     int                  `json:"line_count"`
}

// AttendanceToggledPayload payload.
type AttendanceToggledPayload struct {
	RecordID  string             `json:"record_id"`
	NewStatus domain.ClockStatus `json:"new_status"`
}

// StaffChangedPayload payload.
type StaffChangedPayload struct {
	StaffID string `json:"staff_id"`
	Change  string `json:"change"`
}

// CatalogChangedPayload payload.
type CatalogChangedPayload struct {
	ProductID string `json:"product_id"`
	Change    string `json:"change"`
}

// StockLowPayload payload.
type StockLowPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StockLevel  int    `json:"stock_level"`
	ReorderAt   int    `json:"reorder_at"`
}
