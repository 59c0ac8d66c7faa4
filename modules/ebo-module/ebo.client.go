package ebo_module

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	recon_module "github.com/inethub/rrtool/modules/recon-module"
	results_module "github.com/inethub/rrtool/modules/results-module"
)

// Client talks to the remote aggregate-data endpoints of the
// reconciliation engine.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Summary fetches the per-tenant user-list counters.
func (c *Client) Summary(ctx context.Context) (*results_module.Envelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/getEboData", nil)
	if err != nil {
		return nil, 0, &recon_module.CallError{Kind: recon_module.KindUnknown, Message: recon_module.MsgUnknown, Err: err}
	}
	return c.do(req)
}

// DetailQuery is the filter forwarded to /api/getEbodetailedData.
type DetailQuery struct {
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	Status     string `json:"status"`
	TenantName string `json:"tenantName"`
}

// Details fetches the filtered user rows for one tenant.
func (c *Client) Details(ctx context.Context, query DetailQuery) (*results_module.Envelope, int, error) {
	payload, err := json.Marshal(query)
	if err != nil {
		return nil, 0, &recon_module.CallError{Kind: recon_module.KindUnknown, Message: recon_module.MsgUnknown, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/getEbodetailedData", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, &recon_module.CallError{Kind: recon_module.KindUnknown, Message: recon_module.MsgUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*results_module.Envelope, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, recon_module.Classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, recon_module.Classify(err)
	}
	return results_module.Normalize(raw), resp.StatusCode, nil
}
