package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// LowStockChecker reports products at or below their minimum stock.
type LowStockChecker interface {
	CheckLowStock(ctx context.Context) (int, error)
}

// LowStockWorker checks inventory levels on a fixed interval.
type LowStockWorker struct {
	checker  LowStockChecker
	interval time.Duration
}

// NewLowStockWorker constructs a LowStockWorker.
func NewLowStockWorker(checker LowStockChecker, interval time.Duration) *LowStockWorker {
	return &LowStockWorker{
		checker:  checker,
		interval: interval,
	}
}

// Start runs one check immediately, then one per interval until ctx is
// cancelled.
func (w *LowStockWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Error().Dur("interval", w.interval).Msg("Low stock worker not started: interval must be positive")
		return
	}
	log.Info().Dur("interval", w.interval).Msg("Starting low stock worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.run(ctx)
	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Low stock worker stopped")
			return
		}
	}
}

func (w *LowStockWorker) run(ctx context.Context) {
	n, err := w.checker.CheckLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check low stock")
		return
	}
	if n > 0 {
		log.Warn().Int("products", n).Msg("Low stock reported")
	}
}
