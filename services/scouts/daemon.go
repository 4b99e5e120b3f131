package scouts

import (
	"context"
	"log/slog"
	"time"
)

// RunDaemon drives verification on an hourly tick until the context is
// cancelled. Every tier is offered each tick; the due-program selection
// already rate-limits by tier threshold and the recruiting calendar, so
// a tick where nothing is due is a cheap no-op. The scheduling layer
// must not overlap invocations, batches assume they run alone.
func (s Service) RunDaemon(ctx context.Context, batchLimit int64) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for tier := int64(1); tier <= 3; tier++ {
				result, err := s.VerifyPrograms(ctx, tier, batchLimit)
				if err != nil {
					slog.ErrorContext(ctx, "verification batch failed", "tier", tier, "err", err)
					continue
				}
				if result.Message != "" {
					slog.InfoContext(ctx, "verification batch", "tier", tier, "message", result.Message)
					continue
				}
				slog.InfoContext(ctx, "verification batch finished",
					"tier", tier,
					"verified", result.Verified,
					"changed", len(result.Changes),
					"errors", len(result.Errors),
				)
			}
		}
	}
}
