package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	apperrors "github.com/spec-kit/salon-pos-service/pkg/util"
)

func newTokenService(repo *fakeTokenRepo) *TokenService {
	cfg := config.TerminalConfig{
		TokenTTLMinutes:        20,
		RefreshIntervalMinutes: 20,
		ExpiredGraceMinutes:    5,
	}
	return NewTokenService(repo, cfg, zap.NewNop())
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestIssueCreatesFreshToken(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	token, err := svc.Issue(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, token.Value)
	assert.True(t, token.ExpiresAt.After(token.IssuedAt))
	assert.Equal(t, 20*time.Minute, token.ExpiresAt.Sub(token.IssuedAt))
}

func TestCurrentReturnsCachedTokenUntilExpiry(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	issued, err := svc.Issue(context.Background())
	require.NoError(t, err)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, issued.Value, current.Value)
}

func TestCurrentIssuesWhenNoneExists(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, current.Value)
}

func TestRefreshLeavesPreviousTokenConsumable(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	first, err := svc.Issue(context.Background())
	require.NoError(t, err)
	second, err := svc.Issue(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.Value, second.Value)

	assert.NoError(t, svc.ValidateAndConsume(context.Background(), first.Value))
	assert.NoError(t, svc.ValidateAndConsume(context.Background(), second.Value))
}

func TestTokenIsSingleUse(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	token, err := svc.Issue(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.ValidateAndConsume(context.Background(), token.Value))

	err = svc.ValidateAndConsume(context.Background(), token.Value)
	assert.Equal(t, "TOKEN_NOT_FOUND", domainCode(t, err))
}

func TestUnknownTokenReportsNotFound(t *testing.T) {
	svc := newTokenService(newFakeTokenRepo())

	err := svc.ValidateAndConsume(context.Background(), "never-issued")
	assert.Equal(t, "TOKEN_NOT_FOUND", domainCode(t, err))
}

func TestExpiredTokenStillPresentReportsExpired(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	// A token past its window but inside the grace period is still stored.
	stale := domain.ClockToken{
		Value:     "stale-code",
		IssuedAt:  time.Now().UTC().Add(-25 * time.Minute),
		ExpiresAt: time.Now().UTC().Add(-5 * time.Minute),
	}
	require.NoError(t, repo.Save(context.Background(), stale, 5*time.Minute))

	err := svc.ValidateAndConsume(context.Background(), stale.Value)
	assert.Equal(t, "TOKEN_EXPIRED", domainCode(t, err))
}

func TestSweptTokenReportsNotFound(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	token, err := svc.Issue(context.Background())
	require.NoError(t, err)

	repo.sweep(token.Value)

	err = svc.ValidateAndConsume(context.Background(), token.Value)
	assert.Equal(t, "TOKEN_NOT_FOUND", domainCode(t, err))
}

func TestExpiredScanConsumesTheToken(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTokenService(repo)

	stale := domain.ClockToken{
		Value:     "stale-code",
		IssuedAt:  time.Now().UTC().Add(-25 * time.Minute),
		ExpiresAt: time.Now().UTC().Add(-5 * time.Minute),
	}
	require.NoError(t, repo.Save(context.Background(), stale, 5*time.Minute))

	err := svc.ValidateAndConsume(context.Background(), stale.Value)
	assert.Equal(t, "TOKEN_EXPIRED", domainCode(t, err))

	// The failed scan removed it; a retry cannot see it anymore.
	err = svc.ValidateAndConsume(context.Background(), stale.Value)
	assert.Equal(t, "TOKEN_NOT_FOUND", domainCode(t, err))
}

func TestIssueSurfacesStorageFailure(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.saveErr = errStorageDown
	svc := newTokenService(repo)

	_, err := svc.Issue(context.Background())
	assert.Equal(t, "STORAGE_UNAVAILABLE", domainCode(t, err))
}
