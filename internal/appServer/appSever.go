// launching the ledger: storage backend, services, console menu or HTTP API
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tolgakurtuluss/hotel-accounting-system/config"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/database"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/pkg/storage"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/service"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/transport"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/transport/console"
	"github.com/tolgakurtuluss/hotel-accounting-system/internal/worker"
	"github.com/tolgakurtuluss/hotel-accounting-system/pkg/postgres"
	"github.com/tolgakurtuluss/hotel-accounting-system/pkg/redis"
)

const redisKeyPrefix = "hotel:"

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// App holds the wired services for one run.
type App struct {
	Bookings service.BookingService
	Feedback service.FeedbackService
	Export   service.ExportService

	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewApp opens the configured storage backend and builds the services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	documents, err := app.openStorage(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	repo := database.NewLedgerRepository(documents, cfg.Storage.LedgerPath)
	store := service.NewStore(repo)
	exportFiles := storage.NewFileStorage(cfg.Storage.BasePath)

	app.Bookings = service.NewBookingService(store)
	app.Feedback = service.NewFeedbackService(store)
	app.Export = service.NewExportService(store, exportFiles, cfg.Export.Path)
	return app, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config) (storage.DocumentStorage, error) {
	switch cfg.Storage.Backend {
	case "", "file":
		logrus.WithField("path", cfg.Storage.LedgerPath).Debug("Using file storage")
		return storage.NewFileStorage(cfg.Storage.BasePath), nil

	case "redis":
		client := redis.NewRedisClient(&cfg.Redis)
		a.closers = append(a.closers, client.Close)
		if err := redis.Ping(ctx, client); err != nil {
			return nil, err
		}
		return storage.NewRedisStorage(client, redisKeyPrefix), nil

	case "postgres":
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := postgres.RunMigrations(ctx, db); err != nil {
			return nil, err
		}
		return storage.NewPostgresStorage(db), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// SetupLogging configures the standard logrus logger. The returned closer
// releases a log file when one is used.
func SetupLogging(cfg *config.LoggingConfig) (func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	closer := func() error { return nil }
	switch cfg.Output {
	case "", "stderr":
		logrus.SetOutput(os.Stderr)
	case "stdout":
		logrus.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logrus.SetOutput(file)
		closer = file.Close
	}
	return closer, nil
}

// Start runs the interactive menu, or the HTTP API when cfg.App.Serve is set.
func Start(cfg *config.Config, in io.Reader, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Логи на терминале не должны перемешиваться с меню
	if !cfg.App.Serve && (cfg.Logging.Output == "" || cfg.Logging.Output == "stderr" || cfg.Logging.Output == "stdout") &&
		logrus.GetLevel() > logrus.WarnLevel {
		logrus.SetLevel(logrus.WarnLevel)
	}

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if !cfg.App.Serve {
		err := console.NewMenu(app.Bookings, app.Feedback, app.Export, in, out).Run(ctx)
		if errors.Is(err, context.Canceled) {
			// Ctrl-C у приглашения ввода это обычный выход
			fmt.Fprintln(out)
			logrus.Info("Console interrupted")
			return nil
		}
		return err
	}

	return serve(ctx, cfg, app)
}

func serve(ctx context.Context, cfg *config.Config, app *App) error {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	exportWorker := worker.NewExportWorker(app.Export, cfg.Worker.ExportInterval)
	go exportWorker.Start(ctx)

	handler := transport.NewBookingHandler(app.Bookings, app.Feedback, app.Export)

	srv := new(Server)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handler, cfg.Server.Timeout)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logrus.WithField("port", cfg.Server.Port).Info("App Started")

	select {
	case err := <-errCh:
		return fmt.Errorf("error occured while running http server: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("App Shutting Down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error occured on server shutting down: %w", err)
	}
	return nil
}
