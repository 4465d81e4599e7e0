package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/viralit/client/internal/apiclient"
	"github.com/viralit/client/internal/model"
)

// UpcomingLimit is how many scheduled uploads the dashboard shows.
const UpcomingLimit = 3

// Source is the subset of the API client the aggregator reads from.
type Source interface {
	DashboardMetrics(ctx context.Context, opts ...apiclient.CallOption) (*model.DashboardMetrics, error)
	ListUploads(ctx context.Context, p apiclient.ListUploadsParams, opts ...apiclient.CallOption) (*model.UploadList, error)
}

// AggregationError means at least one of the dashboard reads failed, so no
// view model was produced. It does not record which read failed; Err is the
// first failure observed.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return "dashboard aggregation failed: " + e.Err.Error()
}

func (e *AggregationError) Unwrap() error { return e.Err }

// IsPartialAggregation reports whether err is, or wraps, an *AggregationError.
func IsPartialAggregation(err error) bool {
	var ae *AggregationError
	return errors.As(err, &ae)
}

// Result is the outcome of one load. Exactly one of View and Err is set.
type Result struct {
	Generation uint64
	View       *ViewModel
	Err        error
	// Stale is set by the Presenter when a newer load had already been
	// applied by the time this one completed.
	Stale bool
}

// OK reports whether the load produced a view model.
func (r Result) OK() bool { return r.Err == nil && r.View != nil }

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLocation sets the zone display times are computed in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) AggregatorOption {
	return func(a *Aggregator) {
		a.loc = loc
	}
}

// WithClock overrides the time source used to stamp view models.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

func WithAggregatorLogger(logger zerolog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// Aggregator joins the metrics and upcoming-uploads reads into one view
// model. Each Load is independent; concurrent Loads are neither cancelled
// nor deduplicated.
type Aggregator struct {
	src    Source
	loc    *time.Location
	now    func() time.Time
	logger zerolog.Logger
}

func NewAggregator(src Source, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		src:    src,
		loc:    time.Local,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With().Str("component", "dashboard-aggregator").Logger()
	return a
}

// Load issues both reads concurrently and waits for both to finish. If
// either fails the result carries an *AggregationError and no view.
func (a *Aggregator) Load(ctx context.Context) Result {
	var (
		metrics *model.DashboardMetrics
		uploads *model.UploadList
	)

	// A plain Group: one read failing does not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		m, err := a.src.DashboardMetrics(ctx)
		if err != nil {
			return err
		}
		metrics = m
		return nil
	})
	g.Go(func() error {
		list, err := a.src.ListUploads(ctx, apiclient.ListUploadsParams{
			Status: model.UploadScheduled,
			Limit:  UpcomingLimit,
		})
		if err != nil {
			return err
		}
		uploads = list
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Debug().Err(err).Msg("dashboard load failed")
		return Result{Err: &AggregationError{Err: err}}
	}

	return Result{View: buildView(metrics, uploads.Uploads, a.loc, a.now())}
}
