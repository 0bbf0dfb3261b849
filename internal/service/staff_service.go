package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/events"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// StaffService manages staff member records. All entry points are
// manager-gated; the handler layer enforces the role before calling in.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staffRepo repository.StaffRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	return &StaffService{
		staff:      staffRepo,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// StaffCreateInput describes a new staff member.
type StaffCreateInput struct {
	Name     string
	Role     domain.StaffRole
	PIN      string
	JobTitle string
}

// StaffUpdateInput describes mutable staff fields. Nil leaves a field as is.
type StaffUpdateInput struct {
	Name     *string
	Role     *domain.StaffRole
	PIN      *string
	JobTitle *string
	Active   *bool
}

// Create adds a staff member with a hashed PIN.
func (s *StaffService) Create(ctx context.Context, input StaffCreateInput) (*domain.StaffMember, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	if !auth.ValidPIN(input.PIN) {
		return nil, apperrors.NewValidationError("PIN must be exactly four digits", nil)
	}

	hash, err := auth.HashPIN(input.PIN, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Name:     name,
		Role:     input.Role,
		PINHash:  hash,
		JobTitle: strings.TrimSpace(input.JobTitle),
		Active:   true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		s.logger.Error("failed to create staff member", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishChange(ctx, staff.ID, "created")
	return staff, nil
}

// Update mutates a staff member. The clock status flag is owned by the clock
// service and is not touched here.
func (s *StaffService) Update(ctx context.Context, id string, input StaffUpdateInput) (*domain.StaffMember, error) {
	staff, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name required", nil)
		}
		staff.Name = name
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		staff.Role = *input.Role
	}
	if input.PIN != nil {
		if !auth.ValidPIN(*input.PIN) {
			return nil, apperrors.NewValidationError("PIN must be exactly four digits", nil)
		}
		hash, err := auth.HashPIN(*input.PIN, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		staff.PINHash = hash
	}
	if input.JobTitle != nil {
		staff.JobTitle = strings.TrimSpace(*input.JobTitle)
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"staff_id": id})
		}
		s.logger.Error("failed to update staff member", zap.String("staff_id", id), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.publishChange(ctx, staff.ID, "updated")
	return staff, nil
}

// Delete removes a staff member. Blocked while a shift is in progress so the
// attendance ledger never ends up referencing a vanished member mid-shift.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	staff, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if staff.IsClockedIn {
		return apperrors.NewConflict("staff member is clocked in, clock out before deleting",
			map[string]any{"staff_id": id})
	}

	if err := s.staff.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return apperrors.NewNotFound("staff member", map[string]any{"staff_id": id})
		case repository.IsForeignKeyViolation(err):
			// Transaction history keeps the member's id alive; deactivate
			// instead of deleting.
			return apperrors.NewConflict("staff member has transaction history, deactivate instead",
				map[string]any{"staff_id": id})
		default:
			s.logger.Error("failed to delete staff member", zap.String("staff_id", id), zap.Error(err))
			return apperrors.NewStorageUnavailable(err)
		}
	}

	s.publishChange(ctx, id, "deleted")
	return nil
}

// Get fetches one staff member.
func (s *StaffService) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	return s.getByID(ctx, id)
}

// List returns staff members matching the filter.
func (s *StaffService) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	result, err := s.staff.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list staff", zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return result, nil
}

func (s *StaffService) getByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"staff_id": id})
		}
		s.logger.Error("failed to load staff member", zap.String("staff_id", id), zap.Error(err))
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return staff, nil
}

func (s *StaffService) publishChange(ctx context.Context, staffID, change string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStaffChanged,
		StaffID:   staffID,
		Timestamp: time.Now().UTC(),
		Payload:   events.StaffChangedPayload{StaffID: staffID, Change: change},
	})
}
