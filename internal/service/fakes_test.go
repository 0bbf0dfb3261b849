package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
)

// In-memory repository fakes backing the service tests. They mimic the SQL
// layer's observable behavior, including pgx.ErrNoRows on misses and the
// clamp-at-zero stock decrement.

type fakeStaffRepo struct {
	mu        sync.Mutex
	members   map[string]*domain.StaffMember
	deleteErr error
}

func newFakeStaffRepo(members ...*domain.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{members: make(map[string]*domain.StaffMember)}
	for _, m := range members {
		copied := *m
		repo.members[m.ID] = &copied
	}
	return repo
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if staff.ID == "" {
		staff.ID = uuid.NewString()
	}
	copied := *staff
	r.members[staff.ID] = &copied
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *staff
	r.members[staff.ID] = &copied
	return nil
}

func (r *fakeStaffRepo) SetClockStatus(_ context.Context, id string, clockedIn bool, lastClockIn *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	member.IsClockedIn = clockedIn
	if lastClockIn != nil {
		member.LastClockIn = lastClockIn
	}
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	return &copied, nil
}

func (r *fakeStaffRepo) List(_ context.Context, _ repository.StaffFilter) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StaffMember, 0, len(r.members))
	for _, member := range r.members {
		out = append(out, *member)
	}
	return out, nil
}

func (r *fakeStaffRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members), nil
}

func (r *fakeStaffRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.members[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.members, id)
	return nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*domain.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*domain.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) FindOpenRecord(_ context.Context, staffID string) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var open []*domain.AttendanceRecord
	for _, record := range r.records {
		if record.StaffID == staffID && record.ClockOut == nil {
			open = append(open, record)
		}
	}
	switch len(open) {
	case 0:
		return nil, pgx.ErrNoRows
	case 1:
		copied := *open[0]
		return &copied, nil
	default:
		return nil, repository.ErrMultipleOpenRecords
	}
}

func (r *fakeAttendanceRepo) Open(_ context.Context, record *domain.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.records {
		if stored.StaffID == record.StaffID && stored.ClockOut == nil {
			// The partial unique index allows one open record per staff member.
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_attendance_single_open"}
		}
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeAttendanceRepo) Close(_ context.Context, record *domain.AttendanceRecord, clockOut time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[record.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.ClockOut != nil {
		return repository.ErrRecordAlreadyClosed
	}
	hours := domain.ShiftHours(stored.ClockIn, clockOut)
	stored.ClockOut = &clockOut
	stored.DurationHours = &hours
	record.ClockOut = &clockOut
	record.DurationHours = &hours
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AttendanceRecord, 0, len(r.records))
	for _, record := range r.records {
		if filter.StaffID != nil && record.StaffID != *filter.StaffID {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

type fakeProductRepo struct {
	mu           sync.Mutex
	products     map[string]*domain.Product
	decrementErr error
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		copied := *p
		repo.products[p.ID] = &copied
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0)
	for _, product := range r.products {
		if product.LowOnStock() {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.decrementErr != nil {
		return r.decrementErr
	}
	product, ok := r.products[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if product.StockLevel == nil {
		return nil
	}
	next := *product.StockLevel - quantity
	if next < 0 {
		next = 0
	}
	product.StockLevel = &next
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products), nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

type fakeTransactionRepo struct {
	mu        sync.Mutex
	headers   map[string]*domain.Transaction
	items     map[string][]domain.TransactionItem
	itemsErr  error
	headerErr error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		headers: make(map[string]*domain.Transaction),
		items:   make(map[string][]domain.TransactionItem),
	}
}

func (r *fakeTransactionRepo) CreateHeader(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.headerErr != nil {
		return r.headerErr
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	copied := *tx
	r.headers[tx.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) CreateItems(_ context.Context, transactionID string, items []domain.TransactionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.itemsErr != nil {
		return r.itemsErr
	}
	if _, ok := r.headers[transactionID]; !ok {
		return pgx.ErrNoRows
	}
	stored := make([]domain.TransactionItem, len(items))
	copy(stored, items)
	r.items[transactionID] = stored
	return nil
}

func (r *fakeTransactionRepo) DeleteHeader(_ context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.headers, transactionID)
	delete(r.items, transactionID)
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.headers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *tx
	copied.Items = append([]domain.TransactionItem(nil), r.items[id]...)
	return &copied, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, _ repository.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Transaction, 0, len(r.headers))
	for id, tx := range r.headers {
		copied := *tx
		copied.Items = append([]domain.TransactionItem(nil), r.items[id]...)
		out = append(out, copied)
	}
	return out, nil
}

type fakeTokenRepo struct {
	mu      sync.Mutex
	tokens  map[string]domain.ClockToken
	saveErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]domain.ClockToken)}
}

func (r *fakeTokenRepo) Save(_ context.Context, token domain.ClockToken, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tokens[token.Value] = token
	return nil
}

func (r *fakeTokenRepo) Consume(_ context.Context, value string) (*domain.ClockToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[value]
	if !ok {
		return nil, repository.ErrTokenMissing
	}
	delete(r.tokens, value)
	return &token, nil
}

// sweep drops a stored token as the store's TTL eviction would.
func (r *fakeTokenRepo) sweep(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, value)
}

var errStorageDown = errors.New("storage down")
