package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresStorage(t *testing.T) (DocumentStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresStorage(db), mock
}

func TestPostgresStorageSave(t *testing.T) {
	s, mock := newTestPostgresStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_documents (path, body, updated_at)")).
		WithArgs("hotel_data.json", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), "hotel_data.json", strings.NewReader(`{}`)))
}

func TestPostgresStorageSaveError(t *testing.T) {
	s, mock := newTestPostgresStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_documents")).
		WillReturnError(errors.New("connection reset"))

	err := s.Save(context.Background(), "hotel_data.json", strings.NewReader(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresStorageGet(t *testing.T) {
	s, mock := newTestPostgresStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM ledger_documents WHERE path = $1")).
		WithArgs("hotel_data.json").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"Alice":{}}`)))

	reader, err := s.Get(context.Background(), "hotel_data.json")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, `{"Alice":{}}`, string(data))
}

// Отсутствующая строка означает пустой реестр, а не ошибку базы
func TestPostgresStorageGetMissing(t *testing.T) {
	s, mock := newTestPostgresStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM ledger_documents")).
		WithArgs("hotel_data.json").
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	_, err := s.Get(context.Background(), "hotel_data.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPostgresStorageGetError(t *testing.T) {
	s, mock := newTestPostgresStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT body FROM ledger_documents")).
		WithArgs("hotel_data.json").
		WillReturnError(errors.New("connection reset"))

	_, err := s.Get(context.Background(), "hotel_data.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "connection reset")
}
