package dto

import "github.com/shopspring/decimal"

// CategoryRevenueResponse is revenue for one category.
type CategoryRevenueResponse struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// StaffRevenueResponse is revenue attributed to one staff member.
type StaffRevenueResponse struct {
	StaffID   string          `json:"staff_id"`
	StaffName string          `json:"staff_name"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ItemSalesResponse is units and revenue for one catalog entry.
type ItemSalesResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// OverviewResponse is the dashboard's top-level view.
type OverviewResponse struct {
	TotalRevenue      decimal.Decimal           `json:"total_revenue"`
	TransactionCount  int                       `json:"transaction_count"`
	RevenueByCategory []CategoryRevenueResponse `json:"revenue_by_category"`
	RevenueByStaff    []StaffRevenueResponse    `json:"revenue_by_staff"`
	TopSellers        []ItemSalesResponse       `json:"top_sellers"`
	LowStock          []ProductResponse         `json:"low_stock"`
}
