package workers

import (
	"anon-chat/contract"
	"context"
	"log/slog"
	"time"
)

// WaitSweeper expires participants that waited longer than maxWait.
type WaitSweeper struct {
	log      *slog.Logger
	expirer  contract.Expirer
	maxWait  time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewWaitSweeper(log *slog.Logger, expirer contract.Expirer, maxWait, interval time.Duration) *WaitSweeper {
	return &WaitSweeper{
		log:      log,
		expirer:  expirer,
		maxWait:  maxWait,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (w *WaitSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass and returns how many waiters were dropped.
func (w *WaitSweeper) Sweep(ctx context.Context) int {
	expired := w.expirer.ExpireWaiting(ctx, w.now().Add(-w.maxWait))
	if expired > 0 {
		w.log.Info("Expired waiting participants", "count", expired, "max_wait", w.maxWait)
	}
	return expired
}
