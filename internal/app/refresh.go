package app

import (
	"context"
	"time"

	"github.com/five82/epicview/internal/state"
)

// StartAutoRefresh reloads the latest record at a fixed cadence until ctx is
// cancelled. Ticks only fire a reload from the ready state, so a failure is
// never retried automatically. A non-positive interval returns immediately.
func StartAutoRefresh(ctx context.Context, loader *state.Loader, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !shouldAutoRefresh(loader.Store().Snapshot()) {
				continue
			}
			loader.Refresh(ctx)
		}
	}
}

func shouldAutoRefresh(v state.View) bool {
	return v.Phase == state.PhaseReady
}
