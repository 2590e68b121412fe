package database

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
)

func newTestRepository(t *testing.T) (LedgerRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLedgerRepository(storage.NewFileStorage(dir), "hotel_data.json"), filepath.Join(dir, "hotel_data.json")
}

func TestLoadMissingDocument(t *testing.T) {
	repo, path := newTestRepository(t)

	ledger, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())

	// Загрузка ничего не создает на диске
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadBlankDocument(t *testing.T) {
	repo, path := newTestRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	ledger, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ledger.Len())
}

func TestLoadCorruptDocument(t *testing.T) {
	repo, path := newTestRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode ledger")
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepository(t)

	ledger := entity.NewLedger()
	alice, err := entity.NewBooking("Alice", 101, 3, 100)
	require.NoError(t, err)
	alice.Feedback = &entity.Feedback{Rating: entity.RatingGood, Comment: "Nice"}
	bob, err := entity.NewBooking("Bob", 102, 2, 80)
	require.NoError(t, err)
	ledger.Put(bob)
	ledger.Put(alice)

	require.NoError(t, repo.Save(ctx, ledger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"Bob\": {\n        \"customer_name\": \"Bob\""),
		"document is indented with four spaces, got %s", data)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	bookings := loaded.Bookings()
	assert.Equal(t, "Bob", bookings[0].CustomerName)
	assert.Equal(t, "Alice", bookings[1].CustomerName)
	assert.Equal(t, alice, bookings[1])
}

type failingStorage struct {
	storage.DocumentStorage
}

func (failingStorage) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("connection refused")
}

func (failingStorage) Save(context.Context, string, io.Reader) error {
	return errors.New("disk full")
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	repo := NewLedgerRepository(failingStorage{}, "hotel_data.json")

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	err = repo.Save(context.Background(), entity.NewLedger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
