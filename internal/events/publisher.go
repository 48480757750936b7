package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Publisher emits domain events. Publishing is best-effort: the ledger
// logs failures but never fails an append because of one.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// TransactionCreated is emitted after each successful append.
type TransactionCreated struct {
	TransactionID string          `json:"transaction_id"`
	SessionID     string          `json:"session_id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Noop discards events. Used when the event stream is disabled.
type Noop struct{}

func (Noop) Publish(ctx context.Context, event any) error { return nil }
