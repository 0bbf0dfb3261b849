package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// SalesSummary aggregates the sale ledger over a range.
type SalesSummary struct {
	TotalRevenue     decimal.Decimal
	TransactionCount int
}

// CategoryRevenue is revenue attributed to one catalog category.
type CategoryRevenue struct {
	Category domain.ServiceCategory
	Revenue  decimal.Decimal
}

// StaffRevenue is revenue attributed to the staff member who rang the sale.
type StaffRevenue struct {
	StaffID   string
	StaffName string
	Revenue   decimal.Decimal
}

// ItemSales is units and revenue for one catalog entry.
type ItemSales struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// ReportRepository runs read-side aggregation for the dashboard.
type ReportRepository interface {
	Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	RevenueByCategory(ctx context.Context, from, to time.Time) ([]CategoryRevenue, error)
	RevenueByStaff(ctx context.Context, from, to time.Time) ([]StaffRevenue, error)
	TopSellers(ctx context.Context, from, to time.Time, limit int) ([]ItemSales, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	const query = `
        SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
        FROM transactions
        WHERE occurred_at >= $1 AND occurred_at <= $2`

	var summary SalesSummary
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&summary.TotalRevenue,
		&summary.TransactionCount,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) RevenueByCategory(ctx context.Context, from, to time.Time) ([]CategoryRevenue, error) {
	const query = `
        SELECT i.category, COALESCE(SUM(i.unit_price * i.quantity), 0) AS revenue
        FROM transaction_items i
        JOIN transactions t ON t.id = i.transaction_id
        WHERE t.occurred_at >= $1 AND t.occurred_at <= $2
        GROUP BY i.category
        ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CategoryRevenue
	for rows.Next() {
		var entry CategoryRevenue
		if err := rows.Scan(&entry.Category, &entry.Revenue); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *reportRepository) RevenueByStaff(ctx context.Context, from, to time.Time) ([]StaffRevenue, error) {
	const query = `
        SELECT staff_id, staff_name, COALESCE(SUM(total_amount), 0) AS revenue
        FROM transactions
        WHERE occurred_at >= $1 AND occurred_at <= $2
        GROUP BY staff_id, staff_name
        ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffRevenue
	for rows.Next() {
		var entry StaffRevenue
		if err := rows.Scan(&entry.StaffID, &entry.StaffName, &entry.Revenue); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *reportRepository) TopSellers(ctx context.Context, from, to time.Time, limit int) ([]ItemSales, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
        SELECT i.product_id, i.product_name,
               COALESCE(SUM(i.quantity), 0) AS units,
               COALESCE(SUM(i.unit_price * i.quantity), 0) AS revenue
        FROM transaction_items i
        JOIN transactions t ON t.id = i.transaction_id
        WHERE t.occurred_at >= $1 AND t.occurred_at <= $2
        GROUP BY i.product_id, i.product_name
        ORDER BY units DESC
        LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ItemSales
	for rows.Next() {
		var entry ItemSales
		if err := rows.Scan(&entry.ProductID, &entry.ProductName, &entry.UnitsSold, &entry.Revenue); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
