package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DocumentStorage хранит документы по относительному пути.
// Get возвращает ошибку, удовлетворяющую errors.Is(err, fs.ErrNotExist),
// если документа нет.
type DocumentStorage interface {
	Save(ctx context.Context, path string, data io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) DocumentStorage {
	return &fileStorage{basePath: basePath}
}

// Save overwrites the whole file; there is no locking between processes.
func (s *fileStorage) Save(_ context.Context, path string, data io.Reader) error {
	fullPath := s.fullPath(path)

	// Создаем директорию если нужно
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *fileStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(s.fullPath(path))
}

func (s *fileStorage) fullPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.basePath, path)
}
