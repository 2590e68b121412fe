package database

import (
	"context"

	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
)

// LedgerRepository loads and saves the whole ledger as one document.
type LedgerRepository interface {
	Load(ctx context.Context) (*entity.Ledger, error)
	Save(ctx context.Context, ledger *entity.Ledger) error
}

type documentLedgerRepository struct {
	storage storage.DocumentStorage
	path    string
}
