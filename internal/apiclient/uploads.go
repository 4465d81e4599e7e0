package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/viralit/client/internal/model"
)

// Upload listing limits enforced by the backend.
const (
	DefaultUploadLimit = 100
	MaxUploadLimit     = 500
)

// ListUploadsParams filters an upload listing. Zero values mean "no filter";
// a zero Limit means DefaultUploadLimit.
type ListUploadsParams struct {
	AccountID string
	Status    model.UploadStatus
	Limit     int
}

func (p ListUploadsParams) query() (url.Values, error) {
	q := url.Values{}
	if p.AccountID != "" {
		q.Set("account_id", p.AccountID)
	}
	if p.Status != "" {
		if !p.Status.Valid() {
			return nil, &InvalidArgumentError{Op: "list uploads", Field: "status", Reason: fmt.Sprintf("%q is not an upload status", p.Status)}
		}
		q.Set("status", string(p.Status))
	}

	limit := p.Limit
	if limit == 0 {
		limit = DefaultUploadLimit
	}
	if limit < 1 || limit > MaxUploadLimit {
		return nil, &InvalidArgumentError{Op: "list uploads", Field: "limit", Reason: fmt.Sprintf("%d is outside 1..%d", limit, MaxUploadLimit)}
	}
	q.Set("limit", strconv.Itoa(limit))
	return q, nil
}

// ListUploads returns uploads matching p. The backend orders and limits the
// result; the client reflects it as-is.
func (c *Client) ListUploads(ctx context.Context, p ListUploadsParams, opts ...CallOption) (*model.UploadList, error) {
	q, err := p.query()
	if err != nil {
		return nil, err
	}

	var list model.UploadList
	r := request{method: http.MethodGet, pattern: "/uploads", path: "/uploads", query: q}
	if err := c.do(ctx, r, &list, opts); err != nil {
		return nil, err
	}
	return &list, nil
}
