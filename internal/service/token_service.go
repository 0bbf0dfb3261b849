package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

// TokenService is the store for terminal clock tokens: it issues the code the
// shared display shows and consumes codes presented by scanning staff. Tokens
// are opaque and single use; they prove presence at the terminal, not
// identity, so a stale photograph of the screen stops working once the
// display rotates.
type TokenService struct {
	tokens repository.TokenRepository
	cfg    config.TerminalConfig
	logger *zap.Logger

	mu      sync.Mutex
	current *domain.ClockToken
}

// NewTokenService builds the service.
func NewTokenService(tokens repository.TokenRepository, cfg config.TerminalConfig, logger *zap.Logger) *TokenService {
	return &TokenService{tokens: tokens, cfg: cfg, logger: logger}
}

// Issue creates a fresh code with the configured validity window, persists it
// keyed by its own value, and makes it the current display code.
func (s *TokenService) Issue(ctx context.Context) (domain.ClockToken, error) {
	now := time.Now().UTC()
	token := domain.ClockToken{
		Value:     uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL()),
	}

	if err := s.tokens.Save(ctx, token, s.cfg.ExpiredGrace()); err != nil {
		s.logger.Error("failed to persist clock token", zap.Error(err))
		return domain.ClockToken{}, apperrors.NewStorageUnavailable(err)
	}

	s.mu.Lock()
	s.current = &token
	s.mu.Unlock()

	return token, nil
}

// Current returns the live display code, issuing one when none exists or the
// cached one has run out.
func (s *TokenService) Current(ctx context.Context) (domain.ClockToken, error) {
	s.mu.Lock()
	cached := s.current
	s.mu.Unlock()

	if cached != nil && !cached.Expired(time.Now().UTC()) {
		return *cached, nil
	}
	return s.Issue(ctx)
}

// ValidateAndConsume removes the token whatever the outcome of the check:
// a successful validation consumes it, an expired one is already gone by the
// time the verdict is returned. The token carries no identity; callers decide
// separately whose attendance to toggle.
func (s *TokenService) ValidateAndConsume(ctx context.Context, value string) error {
	token, err := s.tokens.Consume(ctx, value)
	if err != nil {
		if errors.Is(err, repository.ErrTokenMissing) {
			return apperrors.NewTokenNotFound()
		}
		s.logger.Error("failed to consume clock token", zap.Error(err))
		return apperrors.NewStorageUnavailable(err)
	}

	if token.Expired(time.Now().UTC()) {
		return apperrors.NewTokenExpired()
	}
	return nil
}
