package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// AuthService coordinates PIN login and session minting.
type AuthService struct {
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, staffRepo repository.StaffRepository) *AuthService {
	return &AuthService{
		staff:      staffRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login verifies a staff id plus PIN and returns a session token. Invalid id
// and invalid PIN are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, staffID, pin string) (*domain.StaffMember, string, time.Time, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewStorageUnavailable(err)
	}
	if !staff.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("staff inactive")
	}
	if err := auth.ComparePIN(staff.PINHash, pin); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return staff, token, exp, nil
}

// ChangePIN verifies the current PIN before storing a new hash.
func (s *AuthService) ChangePIN(ctx context.Context, staffID, currentPIN, newPIN string) error {
	if !auth.ValidPIN(newPIN) {
		return apperrors.NewValidationError("PIN must be exactly four digits", nil)
	}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff member", map[string]any{"staff_id": staffID})
		}
		return apperrors.NewStorageUnavailable(err)
	}
	if err := auth.ComparePIN(staff.PINHash, currentPIN); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPIN(newPIN, s.bcryptCost)
	if err != nil {
		return err
	}
	staff.PINHash = hash
	if err := s.staff.Update(ctx, staff); err != nil {
		return apperrors.NewStorageUnavailable(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
