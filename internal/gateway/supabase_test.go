package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/yuchingh/daybook/internal/model"
)

func TestSupabaseRPCRequestShape(t *testing.T) {
	var seenReq *http.Request
	var seenArgs map[string]any
	client := NewSupabase("https://proj.supabase.test", "anon-key", "user-token")
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seenReq = req
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if err := json.Unmarshal(raw, &seenArgs); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			return jsonResponse(http.StatusOK, `{
				"summary": {"totalIncome": 0, "totalExpense": 0, "balance": 0},
				"history": [],
				"loggedDates": []
			}`), nil
		}),
	}

	_, err := client.DashboardData(context.Background(), 2025, 6, "2025-06-15")
	if err != nil {
		t.Fatalf("DashboardData() unexpected error: %v", err)
	}
	if seenReq.URL.Path != "/rest/v1/rpc/get_dashboard_data" {
		t.Fatalf("path = %q, want rpc path", seenReq.URL.Path)
	}
	if seenReq.Header.Get("apikey") != "anon-key" {
		t.Fatalf("apikey header = %q, want %q", seenReq.Header.Get("apikey"), "anon-key")
	}
	if seenReq.Header.Get("Authorization") != "Bearer user-token" {
		t.Fatalf("Authorization header = %q, want bearer token", seenReq.Header.Get("Authorization"))
	}
	if seenArgs["p_year"] != float64(2025) || seenArgs["p_month"] != float64(6) {
		t.Fatalf("args = %v, want p_year/p_month set", seenArgs)
	}
	if seenArgs["p_today"] != "2025-06-15" {
		t.Fatalf("p_today = %v, want 2025-06-15", seenArgs["p_today"])
	}
}

func TestSupabasePostgRESTErrorIsAppError(t *testing.T) {
	client := NewSupabase("https://proj.supabase.test", "anon-key", "user-token")
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadRequest, `{"message": "date is required", "code": "P0001"}`), nil
		}),
	}

	err := client.CreateTransaction(context.Background(), model.TransactionInput{})
	var aerr *AppError
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %v, want *AppError", err)
	}
	if aerr.Message != "date is required" {
		t.Fatalf("message = %q, want postgrest message", aerr.Message)
	}
}

func TestSupabaseUnstructuredFailureIsTransportError(t *testing.T) {
	client := NewSupabase("https://proj.supabase.test", "anon-key", "user-token")
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusServiceUnavailable, `upstream down`), nil
		}),
	}

	err := client.CheckIn(context.Background(), "2025-06-15")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestSupabaseWriteRPCNames(t *testing.T) {
	tests := []struct {
		name     string
		call     func(context.Context, *SupabaseClient) error
		wantPath string
	}{
		{
			name: "create",
			call: func(ctx context.Context, c *SupabaseClient) error {
				return c.CreateTransaction(ctx, model.TransactionInput{})
			},
			wantPath: "/rest/v1/rpc/create_transaction",
		},
		{
			name: "update",
			call: func(ctx context.Context, c *SupabaseClient) error {
				return c.UpdateTransaction(ctx, "tx-1", model.TransactionInput{})
			},
			wantPath: "/rest/v1/rpc/update_transaction",
		},
		{
			name: "delete",
			call: func(ctx context.Context, c *SupabaseClient) error {
				return c.DeleteTransaction(ctx, "tx-1")
			},
			wantPath: "/rest/v1/rpc/delete_transaction",
		},
		{
			name: "checkin",
			call: func(ctx context.Context, c *SupabaseClient) error {
				return c.CheckIn(ctx, "2025-06-15")
			},
			wantPath: "/rest/v1/rpc/checkin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			client := NewSupabase("https://proj.supabase.test", "anon-key", "user-token")
			client.httpClient = &http.Client{
				Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
					path = req.URL.Path
					return jsonResponse(http.StatusNoContent, ``), nil
				}),
			}

			if err := tt.call(context.Background(), client); err != nil {
				t.Fatalf("%s unexpected error: %v", tt.name, err)
			}
			if path != tt.wantPath {
				t.Fatalf("path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}
