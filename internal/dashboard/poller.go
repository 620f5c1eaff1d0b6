package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ClientRefreshInterval    = 30 * time.Second
	DeveloperRefreshInterval = 30 * time.Second
	AdminRefreshInterval     = 60 * time.Second
)

// Poller calls refresh on a fixed interval until its context ends. Ticks are
// not skipped while an earlier refresh is still running, so slow refreshes
// overlap.
type Poller struct {
	interval time.Duration
	refresh  func(context.Context)
	logger   zerolog.Logger
}

func NewPoller(interval time.Duration, refresh func(context.Context), logger zerolog.Logger) *Poller {
	return &Poller{interval: interval, refresh: refresh, logger: logger}
}

// Run blocks until ctx is done and every started refresh has returned.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	p.logger.Debug().Dur("interval", p.interval).Msg("Poller started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("Poller stopped")
			return
		case <-ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.refresh(ctx)
			}()
		}
	}
}
