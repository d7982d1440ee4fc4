// Package client talks to a running finboard server.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"finboard/internal/core"
	"finboard/internal/insights"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

type apiError struct {
	Error string `json:"error"`
}

// Dashboard fetches the dashboard for month (YYYY-MM). An empty month asks
// for the server's current month.
func (c *Client) Dashboard(ctx context.Context, month string) (*insights.Dashboard, error) {
	path := "/dashboard"
	if month != "" {
		path += "?" + url.Values{"month": {month}}.Encode()
	}
	var result insights.Dashboard
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var result []core.Transaction
	if err := c.get(ctx, "/transactions", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in core.TransactionInput) (*core.Transaction, error) {
	var result core.Transaction
	if err := c.send(ctx, http.MethodPost, "/transactions", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	var result []core.Budget
	if err := c.get(ctx, "/budgets", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) UpsertBudget(ctx context.Context, in core.BudgetInput) (*core.Budget, error) {
	var result core.Budget
	if err := c.send(ctx, http.MethodPost, "/budgets", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.doRequest(req, result)
}

func (c *Client) send(ctx context.Context, method, path string, body any, result any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doRequest(req, result)
}

func (c *Client) doRequest(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(bodyBytes))
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
