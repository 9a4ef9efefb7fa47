package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yuchingh/daybook/internal/model"
)

// SupabaseClient talks to the Supabase backend through PostgREST RPC calls:
// POST {base}/rest/v1/rpc/{fn} with apikey and bearer headers. Postgres
// functions own all querying and aggregation; errors come back as a
// PostgREST {message, code} payload.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	token      string
	httpClient *http.Client
}

// NewSupabase creates a client for the given project URL. token is the
// authenticated user's access token; anonKey is the project API key.
func NewSupabase(baseURL, anonKey, token string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: baseURL,
		anonKey: anonKey,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type postgrestError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (c *SupabaseClient) DashboardData(ctx context.Context, year, month int, clientToday string) (*model.DashboardData, error) {
	var out model.DashboardData
	err := c.rpc(ctx, "fetch dashboard", "get_dashboard_data", map[string]any{
		"p_year":  year,
		"p_month": month,
		"p_today": clientToday,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SupabaseClient) CreateTransaction(ctx context.Context, in model.TransactionInput) error {
	return c.rpc(ctx, "create transaction", "create_transaction", rpcTransactionArgs("", in), nil)
}

func (c *SupabaseClient) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) error {
	return c.rpc(ctx, "update transaction", "update_transaction", rpcTransactionArgs(id, in), nil)
}

func (c *SupabaseClient) DeleteTransaction(ctx context.Context, id string) error {
	return c.rpc(ctx, "delete transaction", "delete_transaction", map[string]any{"p_id": id}, nil)
}

func (c *SupabaseClient) CheckIn(ctx context.Context, date string) error {
	return c.rpc(ctx, "check in", "checkin", map[string]any{"p_date": date}, nil)
}

func rpcTransactionArgs(id string, in model.TransactionInput) map[string]any {
	args := map[string]any{
		"p_date":     in.Date,
		"p_item":     in.ItemName,
		"p_category": in.Category,
		"p_method":   in.PaymentMethod,
		"p_currency": in.Currency,
		"p_amount":   in.Amount,
		"p_note":     in.Note,
	}
	if id != "" {
		args["p_id"] = id
	}
	return args
}

func (c *SupabaseClient) rpc(ctx context.Context, op, fn string, args map[string]any, out any) error {
	encoded, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/rest/v1/rpc/"+fn,
		bytes.NewReader(encoded),
	)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var perr postgrestError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&perr); decodeErr == nil && perr.Message != "" {
			return &AppError{Op: op, Message: perr.Message}
		}
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
