package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
)

var csvHeader = []string{"customer_name", "room_number", "nights", "rate_per_night", "total_charge", "feedback"}

type exportService struct {
	store *Store
	files storage.DocumentStorage
	path  string
}

// NewExportService writes exports to path through files, which is always
// local disk regardless of where the ledger lives.
func NewExportService(store *Store, files storage.DocumentStorage, path string) ExportService {
	return &exportService{store: store, files: files, path: path}
}

// ExportCSV перезаписывает файл экспорта; при пустом хранилище файл не трогается
func (s *exportService) ExportCSV(ctx context.Context) (*ExportResult, error) {
	var bookings []*entity.Booking
	err := s.store.View(ctx, func(ledger *entity.Ledger) error {
		bookings = ledger.Bookings()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for export: %w", err)
	}
	if len(bookings) == 0 {
		return nil, entity.ErrEmptyStore
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, bookings); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}

	if err := s.files.Save(ctx, s.path, &buf); err != nil {
		return nil, fmt.Errorf("failed to write export %s: %w", s.path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path": s.path,
		"rows": len(bookings),
	}).Info("Bookings exported")

	return &ExportResult{Path: s.path, Rows: len(bookings)}, nil
}

// WriteCSV writes the header and one row per booking.
func WriteCSV(w io.Writer, bookings []*entity.Booking) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, b := range bookings {
		feedback := ""
		if b.Feedback != nil {
			feedback = string(b.Feedback.Rating)
		}
		record := []string{
			b.CustomerName,
			strconv.Itoa(b.RoomNumber),
			strconv.Itoa(b.Nights),
			strconv.FormatFloat(b.RatePerNight, 'f', -1, 64),
			strconv.FormatFloat(b.TotalCharge, 'f', -1, 64),
			feedback,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
