package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mittimitra/advisory/internal/config"
	"github.com/mittimitra/advisory/internal/core/domain"
	natsqueue "github.com/mittimitra/advisory/internal/infrastructure/queue/nats"
	"github.com/mittimitra/advisory/internal/infrastructure/repository/postgres"
	"github.com/mittimitra/advisory/internal/infrastructure/resilience"
	"github.com/mittimitra/advisory/internal/infrastructure/telemetry"
	"github.com/mittimitra/advisory/internal/observability/logging"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

// Worker drains the sensor queue into Postgres and mirrors the ThingSpeak
// channel through the telemetry poller.
type Worker struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.WorkerMetrics

	db         *sql.DB
	queue      *natsqueue.Queue
	sensorRepo *postgres.SensorRepository
	poller     *telemetry.Poller
}

func NewWorker(ctx context.Context, cfg config.Config) (*Worker, error) {
	logger := logging.New(cfg.Service, "worker", cfg.LogLevel)
	workerMetrics := metrics.NewWorkerMetrics(cfg.Service)
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	db, err := postgres.OpenDB(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sensorRepo := postgres.NewSensorRepository(db)
	if err := sensorRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure sensor schema: %w", err)
	}

	queue, err := natsqueue.NewWithOptions(cfg.NATS.URL, cfg.NATS.Subject, natsqueue.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect queue: %w", err)
	}

	telemetryClient := telemetry.New(cfg.Telemetry.BaseURL, cfg.Telemetry.ChannelID, cfg.Telemetry.ReadKey)
	poller := telemetry.NewPoller(telemetryClient, queue, workerMetrics, cfg.Service, cfg.Telemetry.PollInterval, logger)

	return &Worker{
		Config:     cfg,
		Logger:     logger,
		Metrics:    workerMetrics,
		db:         db,
		queue:      queue,
		sensorRepo: sensorRepo,
		poller:     poller,
	}, nil
}

// Run blocks until the context is cancelled. The subscriber and the poller
// run concurrently; either one failing to start tears the worker down.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.queue.SubscribeSensorReadings(ctx, w.persistReading)
	}()
	go func() {
		errCh <- w.poller.Run(ctx)
	}()

	err := <-errCh
	if err != nil && ctx.Err() == nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (w *Worker) persistReading(ctx context.Context, reading domain.SensorReading) error {
	w.Metrics.StartReading()
	start := time.Now()
	err := w.sensorRepo.Insert(ctx, reading)
	w.Metrics.FinishReading(w.Config.Service, time.Since(start), err)
	if err != nil {
		w.Logger.Error("persist sensor reading failed", "reading_id", reading.ID, "error", err)
		return err
	}
	w.Logger.Debug("sensor reading persisted", "reading_id", reading.ID, "device_id", reading.DeviceID)
	return nil
}

func (w *Worker) Close() {
	if w.queue != nil {
		w.queue.Close()
	}
	if w.db != nil {
		_ = w.db.Close()
	}
}
