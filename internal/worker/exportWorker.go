package worker

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/entity"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/service"
)

// ExportWorker периодически выгружает бронирования в CSV
type ExportWorker struct {
	exportService service.ExportService
	interval      time.Duration
}

func NewExportWorker(exportService service.ExportService, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		exportService: exportService,
		interval:      interval,
	}
}

func (w *ExportWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logrus.Info("Export worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.WithField("interval", w.interval.String()).Info("Export worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Export worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет одну выгрузку; пустое хранилище пропускается
func (w *ExportWorker) RunOnce(ctx context.Context) {
	result, err := w.exportService.ExportCSV(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyStore) {
			logrus.Debug("No bookings to export, skipping")
			return
		}
		logrus.Errorf("Scheduled export failed: %v", err)
		return
	}

	logrus.Debugf("Scheduled export wrote %d rows to %s", result.Rows, result.Path)
}
