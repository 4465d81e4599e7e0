package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/viralit/client/internal/model"
)

// ListAccounts returns every connected account.
func (c *Client) ListAccounts(ctx context.Context, opts ...CallOption) (*model.AccountList, error) {
	var list model.AccountList
	r := request{method: http.MethodGet, pattern: "/accounts", path: "/accounts"}
	if err := c.do(ctx, r, &list, opts); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetAccount returns a single account by ID.
func (c *Client) GetAccount(ctx context.Context, id string, opts ...CallOption) (*model.Account, error) {
	if id == "" {
		return nil, &InvalidArgumentError{Op: "get account", Field: "id", Reason: "must not be empty"}
	}

	var acc model.Account
	r := request{method: http.MethodGet, pattern: "/accounts/{id}", path: "/accounts/" + url.PathEscape(id)}
	if err := c.do(ctx, r, &acc, opts); err != nil {
		return nil, err
	}
	return &acc, nil
}

// UpdateAccountStatus pauses or resumes an account. Only the active flag is
// changed server-side.
func (c *Client) UpdateAccountStatus(ctx context.Context, id string, active bool, opts ...CallOption) (*model.StatusUpdateResult, error) {
	if id == "" {
		return nil, &InvalidArgumentError{Op: "update account status", Field: "id", Reason: "must not be empty"}
	}

	var res model.StatusUpdateResult
	r := request{
		method:  http.MethodPatch,
		pattern: "/accounts/{id}/status",
		path:    "/accounts/" + url.PathEscape(id) + "/status",
		body:    model.StatusUpdate{Active: active},
	}
	if err := c.do(ctx, r, &res, opts); err != nil {
		return nil, err
	}
	return &res, nil
}
