package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/service"
)

// StartTerminalWorker re-issues the shared display code on a fixed interval
// so a stale photograph of the screen cannot be replayed indefinitely. Runs
// until the context is cancelled.
func StartTerminalWorker(ctx context.Context, tokens *service.TokenService, interval time.Duration, logger *zap.Logger) {
	if tokens == nil {
		return
	}
	if interval <= 0 {
		interval = 20 * time.Minute
	}

	go func() {
		if _, err := tokens.Issue(ctx); err != nil {
			logger.Warn("initial terminal code issue failed", zap.Error(err))
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := tokens.Issue(ctx); err != nil {
					logger.Warn("terminal code refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
