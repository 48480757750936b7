package storage

import (
	"context"

	"transactions-api/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionStore is the persistence capability the ledger is built on.
// Implementations must return decimal.Zero (not an error, not a null) from
// SumBySession when the session has no rows.
type TransactionStore interface {
	Save(ctx context.Context, tx models.Transaction) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Transaction, error)
	// GetByID returns (nil, nil) when no row has the given id.
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error)
}
