package apiclient

import (
	"context"
	"net/http"

	"github.com/viralit/client/internal/model"
)

// DashboardMetrics fetches today's upload counts, account counts and the
// quota snapshot.
func (c *Client) DashboardMetrics(ctx context.Context, opts ...CallOption) (*model.DashboardMetrics, error) {
	var m model.DashboardMetrics
	r := request{method: http.MethodGet, pattern: "/dashboard/metrics", path: "/dashboard/metrics"}
	if err := c.do(ctx, r, &m, opts); err != nil {
		return nil, err
	}
	return &m, nil
}

// QuotaStatus fetches the quota snapshot on its own.
func (c *Client) QuotaStatus(ctx context.Context, opts ...CallOption) (*model.Quota, error) {
	var q model.Quota
	r := request{method: http.MethodGet, pattern: "/quota/status", path: "/quota/status"}
	if err := c.do(ctx, r, &q, opts); err != nil {
		return nil, err
	}
	return &q, nil
}
