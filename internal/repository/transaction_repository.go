package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// TransactionRepository persists the sale ledger. Header and items are
// written as separate steps so the checkout service can compensate a partial
// write; DeleteHeader exists only for that compensation.
type TransactionRepository interface {
	CreateHeader(ctx context.Context, tx *domain.Transaction) error
	CreateItems(ctx context.Context, transactionID string, items []domain.TransactionItem) error
	DeleteHeader(ctx context.Context, transactionID string) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
}

// TransactionFilter defines query params for history listing.
type TransactionFilter struct {
	StaffID *string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates the repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) CreateHeader(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (external_key, occurred_at, staff_id, staff_name, total_amount, payment_method)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		tx.ExternalKey,
		tx.OccurredAt,
		tx.StaffID,
		tx.StaffName,
		tx.TotalAmount,
		tx.PaymentMethod,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *transactionRepository) CreateItems(ctx context.Context, transactionID string, items []domain.TransactionItem) error {
	const query = `
        INSERT INTO transaction_items (transaction_id, product_id, product_name, category, quantity, unit_price, is_retail)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			transactionID,
			item.ProductID,
			item.ProductName,
			item.Category,
			item.Quantity,
			item.UnitPrice,
			item.IsRetail,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		items[i].TransactionID = transactionID
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *transactionRepository) DeleteHeader(ctx context.Context, transactionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, transactionID)
	return err
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	const query = `
        SELECT id, external_key, occurred_at, staff_id, staff_name, total_amount, payment_method, created_at
        FROM transactions WHERE id=$1`

	var tx domain.Transaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tx.ID,
		&tx.ExternalKey,
		&tx.OccurredAt,
		&tx.StaffID,
		&tx.StaffName,
		&tx.TotalAmount,
		&tx.PaymentMethod,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	tx.Items = items
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	query := `
        SELECT id, external_key, occurred_at, staff_id, staff_name, total_amount, payment_method, created_at
        FROM transactions`
	args := []any{}
	clauses := []string{}

	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("occurred_at <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY occurred_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.ExternalKey,
			&tx.OccurredAt,
			&tx.StaffID,
			&tx.StaffName,
			&tx.TotalAmount,
			&tx.PaymentMethod,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.itemsFor(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *transactionRepository) itemsFor(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	const query = `
        SELECT id, transaction_id, product_id, product_name, category, quantity, unit_price, is_retail
        FROM transaction_items WHERE transaction_id=$1`

	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.TransactionItem
	for rows.Next() {
		var item domain.TransactionItem
		if err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.ProductID,
			&item.ProductName,
			&item.Category,
			&item.Quantity,
			&item.UnitPrice,
			&item.IsRetail,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
