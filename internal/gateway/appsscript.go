package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yuchingh/daybook/internal/model"
)

// AppsScriptClient talks to the Google-Apps-Script-style REST endpoint: one
// URL, GET with an action query for reads, POST with an action field in the
// JSON body for writes. Every response carries a {success, error} envelope.
type AppsScriptClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewAppsScript creates a client for the given script URL.
func NewAppsScript(endpoint string) *AppsScriptClient {
	return &AppsScriptClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type scriptEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// dashboardPayload is the flat Apps Script response: dashboard fields sit
// next to the envelope fields rather than under data.
type dashboardPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	model.DashboardData
}

func (c *AppsScriptClient) DashboardData(ctx context.Context, year, month int, clientToday string) (*model.DashboardData, error) {
	const op = "fetch dashboard"

	query := url.Values{}
	query.Set("action", "getDashboardData")
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))
	if clientToday != "" {
		query.Set("clientToday", clientToday)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build dashboard request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, Status: resp.StatusCode}
	}

	var payload dashboardPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !payload.Success {
		return nil, &AppError{Op: op, Message: payload.Error}
	}

	return &payload.DashboardData, nil
}

func (c *AppsScriptClient) CreateTransaction(ctx context.Context, in model.TransactionInput) error {
	return c.postAction(ctx, "create transaction", actionBody("add", "", in))
}

func (c *AppsScriptClient) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) error {
	return c.postAction(ctx, "update transaction", actionBody("edit", id, in))
}

func (c *AppsScriptClient) DeleteTransaction(ctx context.Context, id string) error {
	return c.postAction(ctx, "delete transaction", map[string]any{
		"action": "delete",
		"id":     id,
	})
}

func (c *AppsScriptClient) CheckIn(ctx context.Context, date string) error {
	return c.postAction(ctx, "check in", map[string]any{
		"action": "checkin",
		"date":   date,
	})
}

func actionBody(action, id string, in model.TransactionInput) map[string]any {
	body := map[string]any{
		"action":   action,
		"date":     in.Date,
		"item":     in.ItemName,
		"category": in.Category,
		"method":   in.PaymentMethod,
		"currency": in.Currency,
		"amount":   in.Amount,
		"note":     in.Note,
	}
	if id != "" {
		body["id"] = id
	}
	return body
}

func (c *AppsScriptClient) postAction(ctx context.Context, op string, body map[string]any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	var envelope scriptEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !envelope.Success {
		return &AppError{Op: op, Message: envelope.Error}
	}
	return nil
}
