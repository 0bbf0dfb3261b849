package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// ErrMultipleOpenRecords signals ledger corruption: more than one shift in
// progress for the same staff member. Must never happen.
var ErrMultipleOpenRecords = errors.New("multiple open attendance records for staff member")

// ErrRecordAlreadyClosed signals a close attempt on a record that already has
// a clock-out.
var ErrRecordAlreadyClosed = errors.New("attendance record already closed")

// AttendanceRepository is the append-only shift ledger.
type AttendanceRepository interface {
	FindOpenRecord(ctx context.Context, staffID string) (*domain.AttendanceRecord, error)
	Open(ctx context.Context, record *domain.AttendanceRecord) error
	Close(ctx context.Context, record *domain.AttendanceRecord, clockOut time.Time) error
	List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error)
}

// AttendanceFilter defines read-side query params. Ordering is clock-in
// descending; that is a display concern, not a ledger invariant.
type AttendanceFilter struct {
	StaffID *string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

const attendanceColumns = `id, staff_id, staff_name, work_date, clock_in, clock_out, duration_hours, created_at`

// FindOpenRecord returns the staff member's shift in progress. pgx.ErrNoRows
// when there is none; ErrMultipleOpenRecords when the ledger holds more than
// one, which signals a bug rather than a user error.
func (r *attendanceRepository) FindOpenRecord(ctx context.Context, staffID string) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records
        WHERE staff_id=$1 AND clock_out IS NULL`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanAttendance(rows)
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, pgx.ErrNoRows
	case 1:
		return &records[0], nil
	default:
		return nil, ErrMultipleOpenRecords
	}
}

func (r *attendanceRepository) Open(ctx context.Context, record *domain.AttendanceRecord) error {
	const query = `
        INSERT INTO attendance_records (staff_id, staff_name, work_date, clock_in)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		record.StaffID,
		record.StaffName,
		record.WorkDate,
		record.ClockIn,
	).Scan(&record.ID, &record.CreatedAt)
}

// Close stamps the clock-out and computed duration. The clock_out IS NULL
// guard makes the mutation a no-op when the record was already closed, which
// surfaces as ErrRecordAlreadyClosed.
func (r *attendanceRepository) Close(ctx context.Context, record *domain.AttendanceRecord, clockOut time.Time) error {
	hours := domain.ShiftHours(record.ClockIn, clockOut)

	const query = `
        UPDATE attendance_records
        SET clock_out=$1, duration_hours=$2
        WHERE id=$3 AND clock_out IS NULL`

	cmd, err := r.pool.Exec(ctx, query, clockOut, hours, record.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordAlreadyClosed
	}

	record.ClockOut = &clockOut
	record.DurationHours = &hours
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records`
	args := []any{}
	clauses := []string{}

	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("clock_in >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("clock_in <= $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY clock_in DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
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
	return scanAttendance(rows)
}

func scanAttendance(rows pgx.Rows) ([]domain.AttendanceRecord, error) {
	var result []domain.AttendanceRecord
	for rows.Next() {
		var record domain.AttendanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.StaffID,
			&record.StaffName,
			&record.WorkDate,
			&record.ClockIn,
			&record.ClockOut,
			&record.DurationHours,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
