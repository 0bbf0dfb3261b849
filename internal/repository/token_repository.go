package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/salon-pos-service/internal/domain"
)

// ErrTokenMissing signals a token value the store does not hold: never
// issued, already consumed, or swept after its grace window.
var ErrTokenMissing = errors.New("clock token not present")

const tokenKeyPrefix = "clock_token:"

// TokenRepository holds live terminal codes, keyed by their own opaque value.
// Redis TTLs implement the expiry sweep; the key outlives the validity window
// by a grace period so a late scan reads the stored expiry and reports
// "expired" rather than "not found".
type TokenRepository interface {
	Save(ctx context.Context, token domain.ClockToken, grace time.Duration) error
	Consume(ctx context.Context, value string) (*domain.ClockToken, error)
}

type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository instantiates the repository.
func NewTokenRepository(client *redis.Client) TokenRepository {
	return &tokenRepository{client: client}
}

func (r *tokenRepository) Save(ctx context.Context, token domain.ClockToken, grace time.Duration) error {
	ttl := time.Until(token.ExpiresAt) + grace
	if ttl <= 0 {
		return errors.New("token already past its grace window")
	}
	return r.client.Set(ctx, tokenKeyPrefix+token.Value, token.ExpiresAt.Format(time.RFC3339Nano), ttl).Err()
}

// Consume removes the token and returns it in one step. GETDEL is atomic, so
// two concurrent scans of the same code cannot both succeed.
func (r *tokenRepository) Consume(ctx context.Context, value string) (*domain.ClockToken, error) {
	raw, err := r.client.GetDel(ctx, tokenKeyPrefix+value).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenMissing
	}
	if err != nil {
		return nil, err
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	return &domain.ClockToken{Value: value, ExpiresAt: expiresAt}, nil
}
