package gormstore

import (
	"context"
	"errors"
	"fmt"

	"transactions-api/internal/models"
	"transactions-api/internal/storage"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store persists transactions through gorm. Every write is a single-row
// insert; there is no multi-statement transaction to manage.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, tx models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return fmt.Errorf("save transaction: %w", err)
	}
	return nil
}

func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// SumBySession wraps SUM in COALESCE because SQL returns NULL, not zero,
// when aggregating over an empty group.
func (s *Store) SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}

var _ storage.TransactionStore = (*Store)(nil)
