package dashboard

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/viralit/client/internal/apiclient"
	"github.com/viralit/client/internal/model"
)

// mockSource implements Source for testing.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) DashboardMetrics(ctx context.Context, _ ...apiclient.CallOption) (*model.DashboardMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardMetrics), args.Error(1)
}

func (m *mockSource) ListUploads(ctx context.Context, p apiclient.ListUploadsParams, _ ...apiclient.CallOption) (*model.UploadList, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadList), args.Error(1)
}

// loaderFunc adapts a function to Loader.
type loaderFunc func(ctx context.Context) Result

func (f loaderFunc) Load(ctx context.Context) Result { return f(ctx) }

var upcomingParams = apiclient.ListUploadsParams{Status: model.UploadScheduled, Limit: UpcomingLimit}

func mustTimestamp(raw string) model.Timestamp {
	ts, err := model.ParseTimestamp(raw)
	if err != nil {
		panic(err)
	}
	return ts
}

func scheduled(id, at string) model.Upload {
	return model.Upload{
		ID:           id,
		AccountID:    "acc-1",
		Status:       model.UploadScheduled,
		ScheduledFor: mustTimestamp(at),
		Title:        "upload " + id,
	}
}
