package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/viralit/client/internal/apiclient"
	"github.com/viralit/client/internal/backendtest"
	"github.com/viralit/client/internal/model"
)

func TestAggregator_Load_Success(t *testing.T) {
	src := &mockSource{}
	metrics := &model.DashboardMetrics{UploadsToday: 4, UploadsDone: 2, UploadsScheduled: 7, ActiveAccounts: 3, TotalAccounts: 5}
	uploads := &model.UploadList{
		Uploads: []model.Upload{
			scheduled("u-1", "2025-03-01T09:05:00"),
			scheduled("u-2", "2025-03-02T14:30:00"),
			scheduled("u-3", "2025-03-03T00:00:00"),
			scheduled("u-4", "2025-03-04T10:00:00"),
		},
		Count: 4,
	}
	src.On("DashboardMetrics", mock.Anything).Return(metrics, nil).Once()
	src.On("ListUploads", mock.Anything, upcomingParams).Return(uploads, nil).Once()

	loadedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	agg := NewAggregator(src, WithClock(func() time.Time { return loadedAt }))

	res := agg.Load(context.Background())
	require.True(t, res.OK())
	require.NoError(t, res.Err)
	require.NotNil(t, res.View)

	assert.Equal(t, *metrics, res.View.Metrics)
	assert.Equal(t, loadedAt, res.View.LoadedAt)
	require.Len(t, res.View.Upcoming, UpcomingLimit)
	assert.Equal(t, "u-1", res.View.Upcoming[0].Upload.ID)
	assert.Equal(t, "u-2", res.View.Upcoming[1].Upload.ID)
	assert.Equal(t, "u-3", res.View.Upcoming[2].Upload.ID)
	assert.Equal(t, "14:30", res.View.Upcoming[1].Time())
	assert.Equal(t, "0:00", res.View.Upcoming[2].Time())

	src.AssertExpectations(t)
}

func TestAggregator_DisplayTime(t *testing.T) {
	up := NewUpcomingUpload(scheduled("u-1", "2025-03-01T09:05:00"), time.Local)
	assert.Equal(t, 9, up.Hour)
	assert.Equal(t, "05", up.Minute)
	assert.Equal(t, "9:05", up.Time())
	assert.Equal(t, 1, up.Day)

	utc := NewUpcomingUpload(scheduled("u-2", "2025-03-31T23:45:00Z"), time.UTC)
	assert.Equal(t, "23:45", utc.Time())
	assert.Equal(t, 31, utc.Day)
}

func TestAggregator_Load_EmptyUploads(t *testing.T) {
	src := &mockSource{}
	src.On("DashboardMetrics", mock.Anything).Return(&model.DashboardMetrics{}, nil)
	src.On("ListUploads", mock.Anything, upcomingParams).Return(&model.UploadList{}, nil)

	res := NewAggregator(src).Load(context.Background())
	require.True(t, res.OK())
	assert.Empty(t, res.View.Upcoming)
	assert.NotNil(t, res.View.Upcoming)
}

func TestAggregator_Load_ReadsAreConcurrent(t *testing.T) {
	src := &mockSource{}
	barrier := make(chan struct{})
	var arrived atomic.Int32
	wait := func(mock.Arguments) {
		if arrived.Add(1) == 2 {
			close(barrier)
		}
		select {
		case <-barrier:
		case <-time.After(2 * time.Second):
			t.Error("reads were not in flight at the same time")
		}
	}
	src.On("DashboardMetrics", mock.Anything).Run(wait).Return(&model.DashboardMetrics{}, nil)
	src.On("ListUploads", mock.Anything, upcomingParams).Run(wait).Return(&model.UploadList{}, nil)

	res := NewAggregator(src).Load(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, int32(2), arrived.Load())
}

func TestAggregator_Load_EitherFailureFailsWhole(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name       string
		metricsErr error
		uploadsErr error
	}{
		{"metrics fails", boom, nil},
		{"uploads fails", nil, boom},
		{"both fail", boom, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			if tt.metricsErr != nil {
				src.On("DashboardMetrics", mock.Anything).Return(nil, tt.metricsErr).Once()
			} else {
				src.On("DashboardMetrics", mock.Anything).Return(&model.DashboardMetrics{UploadsToday: 1}, nil).Once()
			}
			if tt.uploadsErr != nil {
				src.On("ListUploads", mock.Anything, upcomingParams).Return(nil, tt.uploadsErr).Once()
			} else {
				src.On("ListUploads", mock.Anything, upcomingParams).Return(&model.UploadList{}, nil).Once()
			}

			res := NewAggregator(src).Load(context.Background())
			assert.False(t, res.OK())
			assert.Nil(t, res.View, "no partial view model")
			require.Error(t, res.Err)
			assert.True(t, IsPartialAggregation(res.Err))
			assert.ErrorIs(t, res.Err, boom)

			// Join semantics: both reads ran to completion.
			src.AssertExpectations(t)
		})
	}
}

func TestAggregator_Load_WaitsForSlowSibling(t *testing.T) {
	src := &mockSource{}
	var uploadsDone atomic.Bool
	src.On("DashboardMetrics", mock.Anything).Return(nil, errors.New("metrics down")).Once()
	src.On("ListUploads", mock.Anything, upcomingParams).Run(func(mock.Arguments) {
		time.Sleep(50 * time.Millisecond)
		uploadsDone.Store(true)
	}).Return(&model.UploadList{}, nil).Once()

	res := NewAggregator(src).Load(context.Background())
	require.Error(t, res.Err)
	assert.True(t, uploadsDone.Load(), "load returned before the sibling read completed")
}

// Without generation tagging, whichever load resolves last wins a plain
// slot, even if it was issued first.
func TestAggregator_OverlappingLoadsResolveOutOfOrder(t *testing.T) {
	src := &mockSource{}
	first := &model.DashboardMetrics{UploadsToday: 1}
	second := &model.DashboardMetrics{UploadsToday: 2}

	started := make(chan struct{})
	release := make(chan struct{})
	src.On("DashboardMetrics", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(first, nil).Once()
	src.On("DashboardMetrics", mock.Anything).Return(second, nil).Once()
	src.On("ListUploads", mock.Anything, upcomingParams).Return(&model.UploadList{}, nil)

	agg := NewAggregator(src)
	var slot atomic.Pointer[ViewModel]

	done := make(chan struct{})
	go func() {
		defer close(done)
		slot.Store(agg.Load(context.Background()).View)
	}()
	<-started

	slot.Store(agg.Load(context.Background()).View)
	assert.Equal(t, 2, slot.Load().Metrics.UploadsToday)

	close(release)
	<-done
	assert.Equal(t, 1, slot.Load().Metrics.UploadsToday, "a naive slot keeps whichever load resolved last")
}

func TestAggregator_WithBackend(t *testing.T) {
	b := backendtest.New(t)
	b.AddAccount(model.Account{ID: "acc-1", DisplayName: "Clips", ThemeSlug: "gaming", Active: true})
	for i, at := range []string{"2025-03-01T09:05:00", "2025-03-02T10:00:00", "2025-03-03T11:00:00", "2025-03-04T12:00:00"} {
		u := scheduled(string(rune('a'+i)), at)
		b.AddUpload(u)
	}
	b.AddUpload(model.Upload{AccountID: "acc-1", Status: model.UploadDone, ScheduledFor: mustTimestamp("2025-02-28T09:00:00"), Title: "done"})

	agg := NewAggregator(apiclient.New(b.URL))
	res := agg.Load(context.Background())
	require.True(t, res.OK(), "%v", res.Err)
	assert.Equal(t, 4, res.View.Metrics.UploadsScheduled)
	assert.Equal(t, 1, res.View.Metrics.ActiveAccounts)
	require.Len(t, res.View.Upcoming, 3)
	for _, u := range res.View.Upcoming {
		assert.Equal(t, model.UploadScheduled, u.Upload.Status)
	}
	// Backend orders by scheduled_for descending.
	assert.Equal(t, "12:00", res.View.Upcoming[0].Time())
	assert.Equal(t, 4, res.View.Upcoming[0].Day)

	var sawLimit bool
	for _, r := range b.Requests() {
		if r.Path == "/uploads" {
			sawLimit = true
			assert.Equal(t, "3", r.Query.Get("limit"))
			assert.Equal(t, "scheduled", r.Query.Get("status"))
		}
	}
	assert.True(t, sawLimit)
}

func TestAggregator_WithBackend_PartialFailure(t *testing.T) {
	b := backendtest.New(t)
	b.Override(http.MethodGet, "/dashboard/metrics", http.StatusInternalServerError, "internal error")

	res := NewAggregator(apiclient.New(b.URL)).Load(context.Background())
	require.Error(t, res.Err)
	assert.True(t, IsPartialAggregation(res.Err))

	var be *apiclient.BackendError
	require.ErrorAs(t, res.Err, &be)
	assert.Equal(t, http.StatusInternalServerError, be.StatusCode)
	assert.Equal(t, "internal error", be.Body)
	assert.Len(t, b.Requests(), 2)
}
