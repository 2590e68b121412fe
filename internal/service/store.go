package service

import (
	"context"
	"sync"

	"github.com/tolgakurtuluss/hotel-accounting-system/internal/database"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
)

// Store runs every operation as a full load, mutate, save cycle. The mutex
// only serializes callers inside this process; two processes sharing one
// document still overwrite each other (last writer wins).
type Store struct {
	repo database.LedgerRepository
	mu   sync.Mutex
}

func NewStore(repo database.LedgerRepository) *Store {
	return &Store{repo: repo}
}

// View loads the ledger and hands it to fn. Nothing is saved.
func (s *Store) View(ctx context.Context, fn func(*entity.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ledger)
}

// Update loads the ledger, applies fn and saves the result only if fn
// succeeded, so a rejected operation never reaches storage.
func (s *Store) Update(ctx context.Context, fn func(*entity.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(ledger); err != nil {
		return err
	}
	return s.repo.Save(ctx, ledger)
}
