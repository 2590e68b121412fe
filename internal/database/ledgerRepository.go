package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
)

const jsonIndent = "    "

func NewLedgerRepository(storage storage.DocumentStorage, path string) LedgerRepository {
	return &documentLedgerRepository{storage: storage, path: path}
}

// Load returns an empty ledger when the document does not exist yet.
func (r *documentLedgerRepository) Load(ctx context.Context) (*entity.Ledger, error) {
	reader, err := r.storage.Get(ctx, r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entity.NewLedger(), nil
		}
		return nil, fmt.Errorf("failed to open ledger %s: %w", r.path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.NewLedger(), nil
	}

	ledger := entity.NewLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %s: %w", r.path, err)
	}
	return ledger, nil
}

// Save overwrites the whole document.
func (r *documentLedgerRepository) Save(ctx context.Context, ledger *entity.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	if err := r.storage.Save(ctx, r.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save ledger %s: %w", r.path, err)
	}
	return nil
}
