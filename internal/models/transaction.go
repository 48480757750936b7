package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the polarity of a transaction as declared by the client.
// It is input-only: the store keeps a signed amount, not the type.
type TxType string

const (
	TxCredit TxType = "credit"
	TxDebit  TxType = "debit"
)

func (t TxType) Valid() bool {
	return t == TxCredit || t == TxDebit
}

// Transaction is a single signed ledger record. The amount carries the
// sign: positive for credit, negative for debit. SessionID is the
// partition key; the column stays nullable in the schema even though
// every current write path fills it.
type Transaction struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	SessionID *string         `gorm:"size:36;index" json:"session_id"`
	Title     string          `gorm:"size:255;not null" json:"title"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// BalanceSummary is derived per query from the transaction rows of one
// session; it is never stored.
type BalanceSummary struct {
	Amount decimal.Decimal `json:"amount"`
}
