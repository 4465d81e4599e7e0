package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/viralit/client/internal/metrics"
)

// Refresh results recorded in metrics.
const (
	RefreshApplied = "applied"
	RefreshStale   = "stale"
	RefreshFailed  = "failed"
)

// Loader produces one dashboard result per call.
type Loader interface {
	Load(ctx context.Context) Result
}

// Presenter owns the current dashboard view. Every Refresh is tagged with a
// generation number and its view is applied only if no later generation has
// been applied already, so a slow refresh cannot overwrite a newer one.
// A failed refresh leaves the current view untouched.
type Presenter struct {
	loader  Loader
	logger  zerolog.Logger
	metrics *metrics.ClientMetrics

	generation atomic.Uint64
	inFlight   atomic.Int64

	mu      sync.RWMutex
	applied uint64
	current *ViewModel
}

func NewPresenter(loader Loader, logger zerolog.Logger, m *metrics.ClientMetrics) *Presenter {
	return &Presenter{
		loader:  loader,
		logger:  logger.With().Str("component", "dashboard").Logger(),
		metrics: m,
	}
}

// Refresh loads the dashboard and applies the result if it is the newest
// seen. The returned Result is always typed; callers decide what a failure
// means to the user.
func (p *Presenter) Refresh(ctx context.Context) Result {
	gen := p.generation.Add(1)
	p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	res := p.loader.Load(ctx)
	res.Generation = gen

	if !res.OK() {
		p.metrics.ObserveRefresh(RefreshFailed)
		p.logger.Warn().Err(res.Err).Uint64("generation", gen).Msg("dashboard refresh failed, keeping previous view")
		return res
	}

	p.mu.Lock()
	if gen <= p.applied {
		applied := p.applied
		p.mu.Unlock()
		res.Stale = true
		p.metrics.ObserveRefresh(RefreshStale)
		p.metrics.ObserveStale()
		p.logger.Debug().Uint64("generation", gen).Uint64("applied", applied).Msg("discarding stale dashboard refresh")
		return res
	}
	p.applied = gen
	p.current = res.View
	p.mu.Unlock()

	p.metrics.ObserveRefresh(RefreshApplied)
	p.logger.Debug().Uint64("generation", gen).Int("upcoming", len(res.View.Upcoming)).Msg("dashboard refreshed")
	return res
}

// Current returns the last applied view, or nil before the first successful
// refresh.
func (p *Presenter) Current() *ViewModel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Generation returns the generation of the current view.
func (p *Presenter) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.applied
}

// Loading reports whether any refresh is still in flight.
func (p *Presenter) Loading() bool {
	return p.inFlight.Load() > 0
}
