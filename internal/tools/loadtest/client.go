package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// timings mirrors the facade's /metrics body.
type timings struct {
	LedgerTimeNanos uint64 `json:"ledger_time_nanos"`
	LogTimeNanos    uint64 `json:"log_time_nanos"`
}

type facadeClient struct {
	baseURL string
	http    *http.Client
}

func newFacadeClient(baseURL string, timeout time.Duration) *facadeClient {
	return &facadeClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 256,
			},
		},
	}
}

func (c *facadeClient) submit(ctx context.Context, userID string, amount float64) error {
	body, err := json.Marshal(map[string]any{"user_id": userID, "amount": amount})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST /transaction: status %d", resp.StatusCode)
	}
	return nil
}

func (c *facadeClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

func (c *facadeClient) timings(ctx context.Context) (timings, error) {
	var out timings
	err := c.getJSON(ctx, "/metrics", &out)
	return out, err
}

func (c *facadeClient) accounts(ctx context.Context) (map[string]float64, error) {
	var out map[string]float64
	err := c.getJSON(ctx, "/accounts", &out)
	return out, err
}

func (c *facadeClient) userBalance(ctx context.Context, userID string) (float64, error) {
	var out struct {
		Balance *float64 `json:"balance"`
	}
	if err := c.getJSON(ctx, "/user/"+url.PathEscape(userID), &out); err != nil {
		return 0, err
	}
	if out.Balance == nil {
		return 0, fmt.Errorf("missing balance in /user response")
	}
	return *out.Balance, nil
}
