package gateway

import (
	"context"
	"fmt"

	"github.com/yuchingh/daybook/internal/model"
)

// Gateway is the logical contract both expense-tracker backends expose.
// The concrete adapter is selected at startup from configuration.
type Gateway interface {
	// DashboardData fetches one month of aggregated data. clientToday is the
	// client's local yyyy-mm-dd, letting the backend compute streak state in
	// the user's day, not the server's.
	DashboardData(ctx context.Context, year, month int, clientToday string) (*model.DashboardData, error)
	CreateTransaction(ctx context.Context, in model.TransactionInput) error
	UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) error
	DeleteTransaction(ctx context.Context, id string) error
	// CheckIn records a content-free streak entry for date. The backend
	// upserts keyed by (user, date), so repeats are harmless.
	CheckIn(ctx context.Context, date string) error
}

// TransportError is a network-level failure: unreachable host, timeout, or a
// non-2xx status with no structured payload.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is a structured failure payload from the backend, e.g. a rejected
// validation. Message is backend-supplied and shown to the user as-is.
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Op + ": backend reported an unknown error"
	}
	return e.Op + ": " + e.Message
}
