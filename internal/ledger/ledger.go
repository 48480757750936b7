package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"transactions-api/internal/events"
	"transactions-api/internal/models"
	"transactions-api/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger owns the transaction set for all sessions. The store is injected
// as a capability so tests can substitute the in-memory implementation.
type Ledger struct {
	store storage.TransactionStore
	pub   events.Publisher
}

func New(store storage.TransactionStore, pub events.Publisher) *Ledger {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Ledger{store: store, pub: pub}
}

// Append writes one signed transaction for the given session and returns
// the persisted row. The declared kind determines the stored sign: credit
// keeps the magnitude as given, debit stores its additive inverse. The
// kind itself is not persisted, and the sign is never reinterpreted after
// this point.
func (l *Ledger) Append(ctx context.Context, sessionID, title string, kind models.TxType, magnitude decimal.Decimal) (models.Transaction, error) {
	if !kind.Valid() {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", kind)
	}

	amount := magnitude
	if kind == models.TxDebit {
		amount = magnitude.Neg()
	}

	tx := models.Transaction{
		ID:        uuid.NewString(),
		SessionID: &sessionID,
		Title:     title,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := l.store.Save(ctx, tx); err != nil {
		return models.Transaction{}, err
	}

	// best-effort event, never fails the append
	if err := l.pub.Publish(ctx, events.TransactionCreated{
		TransactionID: tx.ID,
		SessionID:     sessionID,
		Title:         tx.Title,
		Amount:        tx.Amount,
		CreatedAt:     tx.CreatedAt,
	}); err != nil {
		log.Printf("publish transaction_created: %v", err)
	}

	return tx, nil
}

// ListBySession returns the session's transactions in storage order.
// An unknown session yields an empty list, not an error.
func (l *Ledger) ListBySession(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	return l.store.ListBySession(ctx, sessionID)
}

// GetByID returns nil when no transaction has the given id. It performs
// no session check: a transaction is readable by anyone holding its id.
func (l *Ledger) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return l.store.GetByID(ctx, id)
}

// SumBySession recomputes the balance from the rows on every call. There
// is no cached running total, so the result cannot drift from the entry
// set. An empty session sums to zero.
func (l *Ledger) SumBySession(ctx context.Context, sessionID string) (models.BalanceSummary, error) {
	sum, err := l.store.SumBySession(ctx, sessionID)
	if err != nil {
		return models.BalanceSummary{}, err
	}
	return models.BalanceSummary{Amount: sum}, nil
}
