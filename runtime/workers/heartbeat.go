package workers

import (
	"context"
	"log/slog"
	"time"

	"lan-collab/contract"
	"lan-collab/runtime"
)

// expiryFactor is how many missed heartbeat intervals mark a participant
// as gone.
const expiryFactor = 3

// HeartbeatWorker sweeps the registry on a fixed period and routes lapsed
// participants through the same cleanup path as an explicit logout.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry *runtime.Registry
	cleaner  contract.SessionCleaner
	interval time.Duration
}

func NewHeartbeatWorker(
	log *slog.Logger,
	registry *runtime.Registry,
	cleaner contract.SessionCleaner,
	interval time.Duration,
) *HeartbeatWorker {
	return &HeartbeatWorker{
		log:      log,
		registry: registry,
		cleaner:  cleaner,
		interval: interval,
	}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat sweep", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, p := range w.registry.Expired(expiryFactor * w.interval) {
				w.log.Info("Removing inactive user",
					"uid", p.UID, "username", p.Username,
					"last_heartbeat", p.LastHeartbeat)
				w.cleaner.Cleanup(p.UID)
			}
		}
	}
}
