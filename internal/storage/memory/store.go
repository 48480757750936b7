package memory

import (
	"context"
	"sync"

	"transactions-api/internal/models"
	"transactions-api/internal/storage"

	"github.com/shopspring/decimal"
)

// Store is an in-memory TransactionStore used by tests. It keeps rows in
// insertion order, matching the listing behavior of the real store.
type Store struct {
	mu  sync.Mutex
	txs []models.Transaction
}

func New() *Store {
	return &Store{txs: make([]models.Transaction, 0)}
}

func (s *Store) Save(ctx context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append(s.txs, tx)
	return nil
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Transaction
	for _, tx := range s.txs {
		if tx.SessionID != nil && *tx.SessionID == sessionID {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			tx := s.txs[i]
			return &tx, nil
		}
	}
	return nil, nil
}

func (s *Store) SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, tx := range s.txs {
		if tx.SessionID != nil && *tx.SessionID == sessionID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

var _ storage.TransactionStore = (*Store)(nil)
