package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/events"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// ClockService is the toggle engine: given a staff identity it decides
// clock-in versus clock-out from the cached status flag, updates the
// attendance ledger, and keeps the flag in step with the ledger.
type ClockService struct {
	staff      repository.StaffRepository
	ledger     repository.AttendanceRepository
	tokens     *TokenService
	dispatcher events.Dispatcher
	logger     *zap.Logger

	// Serializes toggles per staff id. Two concurrent toggles for the same
	// member race on the status read-then-write without this.
	locks sync.Map
}

// ClockDependencies bundles requirements for the clock service.
type ClockDependencies struct {
	StaffRepo      repository.StaffRepository
	AttendanceRepo repository.AttendanceRepository
	TokenService   *TokenService
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewClockService builds the service.
func NewClockService(deps ClockDependencies) *ClockService {
	return &ClockService{
		staff:      deps.StaffRepo,
		ledger:     deps.AttendanceRepo,
		tokens:     deps.TokenService,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ToggleResult reports the outcome of a toggle.
type ToggleResult struct {
	Status  domain.ClockStatus
	Record  *domain.AttendanceRecord
	Message string
}

// ScanToggle consumes a terminal code and then toggles the scanning staff
// member. Only the caller's verified identity decides whose status flips; the
// code merely proves the caller stood at the terminal.
func (s *ClockService) ScanToggle(ctx context.Context, staffID, tokenValue string) (*ToggleResult, error) {
	if err := s.tokens.ValidateAndConsume(ctx, tokenValue); err != nil {
		return nil, err
	}
	return s.Toggle(ctx, staffID)
}

// Toggle flips the staff member between ClockedOut and ClockedIn.
func (s *ClockService) Toggle(ctx context.Context, staffID string) (*ToggleResult, error) {
	lock := s.lockFor(staffID)
	lock.Lock()
	defer lock.Unlock()

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"staff_id": staffID})
		}
		s.logger.Error("failed to load staff member", zap.String("staff_id", staffID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	now := time.Now().UTC()
	if staff.IsClockedIn {
		return s.clockOut(ctx, staff, now)
	}
	return s.clockIn(ctx, staff, now)
}

func (s *ClockService) clockIn(ctx context.Context, staff *domain.StaffMember, now time.Time) (*ToggleResult, error) {
	record := &domain.AttendanceRecord{
		StaffID:   staff.ID,
		StaffName: staff.Name,
		WorkDate:  now.Truncate(24 * time.Hour),
		ClockIn:   now,
	}
	if err := s.ledger.Open(ctx, record); err != nil {
		if repository.IsUniqueViolation(err) {
			// The flag says clocked out but an open record already exists.
			s.logger.Warn("clock-in refused, open attendance record already exists",
				zap.String("staff_id", staff.ID))
			return nil, apperrors.NewInconsistentState("status flag and attendance ledger disagree",
				map[string]any{"staff_id": staff.ID})
		}
		s.logger.Error("failed to open attendance record", zap.String("staff_id", staff.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	if err := s.staff.SetClockStatus(ctx, staff.ID, true, &now); err != nil {
		s.logger.Error("failed to set clocked-in flag", zap.String("staff_id", staff.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishToggle(ctx, staff.ID, record.ID, domain.StatusClockedIn)
	return &ToggleResult{
		Status:  domain.StatusClockedIn,
		Record:  record,
		Message: fmt.Sprintf("Welcome back, %s. You are clocked in.", staff.Name),
	}, nil
}

func (s *ClockService) clockOut(ctx context.Context, staff *domain.StaffMember, now time.Time) (*ToggleResult, error) {
	record, err := s.ledger.FindOpenRecord(ctx, staff.ID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// The flag says "in" but no open record backs it. Silently
			// resetting the flag would hide data loss, so report instead.
			s.logger.Error("clocked-in flag set but no open attendance record",
				zap.String("staff_id", staff.ID))
			return nil, apperrors.NewInconsistentState(
				"status flag and attendance ledger disagree",
				map[string]any{"staff_id": staff.ID})
		case errors.Is(err, repository.ErrMultipleOpenRecords):
			s.logger.Error("multiple open attendance records",
				zap.String("staff_id", staff.ID))
			return nil, apperrors.NewInconsistentState(
				"more than one open attendance record",
				map[string]any{"staff_id": staff.ID})
		default:
			s.logger.Error("failed to find open attendance record",
				zap.String("staff_id", staff.ID), zap.Error(err))
			return nil, apperrors.NewStorageUnavailable(err)
		}
	}

	if err := s.ledger.Close(ctx, record, now); err != nil {
		if errors.Is(err, repository.ErrRecordAlreadyClosed) {
			return nil, apperrors.NewNoOpenRecord(staff.ID)
		}
		s.logger.Error("failed to close attendance record",
			zap.String("staff_id", staff.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	if err := s.staff.SetClockStatus(ctx, staff.ID, false, nil); err != nil {
		s.logger.Error("failed to clear clocked-in flag", zap.String("staff_id", staff.ID), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishToggle(ctx, staff.ID, record.ID, domain.StatusClockedOut)
	hours := 0.0
	if record.DurationHours != nil {
		hours = *record.DurationHours
	}
	return &ToggleResult{
		Status:  domain.StatusClockedOut,
		Record:  record,
		Message: fmt.Sprintf("Goodbye, %s. You are clocked out after %.2f hours.", staff.Name, hours),
	}, nil
}

func (s *ClockService) lockFor(staffID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(staffID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *ClockService) publishToggle(ctx context.Context, staffID, recordID string, status domain.ClockStatus) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAttendanceToggled,
		StaffID:   staffID,
		Timestamp: time.Now().UTC(),
		Payload: events.AttendanceToggledPayload{
			RecordID:  recordID,
			NewStatus: status,
		},
	})
}
