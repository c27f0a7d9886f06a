package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

const (
	defaultPollInterval = 15 * time.Second
	pollerDeviceID      = "TS_STATION_01"
)

// Poller mirrors the ThingSpeak channel into the sensor queue. It remembers
// the last entry_id seen and publishes only when the channel advanced, so a
// quiet channel does not flood the queue with duplicates.
type Poller struct {
	source      ports.TelemetrySource
	queue       ports.SensorQueue
	metrics     *metrics.WorkerMetrics
	service     string
	interval    time.Duration
	logger      *slog.Logger
	lastEntryID int64
}

func NewPoller(source ports.TelemetrySource, queue ports.SensorQueue, m *metrics.WorkerMetrics, service string, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		source:   source,
		queue:    queue,
		metrics:  m,
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("telemetry poller started", "interval", p.interval.String())
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("telemetry poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	feed, err := p.source.Latest(ctx)
	if err != nil {
		p.logger.Warn("telemetry poll failed", "error", err)
		p.metrics.RecordPollerSync(p.service, "error")
		return
	}
	if feed == nil || feed.EntryID == p.lastEntryID {
		p.metrics.RecordPollerSync(p.service, "duplicate")
		return
	}

	reading := domain.SensorReading{
		ID:          uuid.NewString(),
		DeviceID:    pollerDeviceID,
		Temperature: feed.Temperature,
		Humidity:    feed.Humidity,
		Moisture:    feed.Moisture,
		SoilPH:      feed.SoilPH,
		Nitrogen:    feed.Nitrogen,
		Phosphorus:  feed.Phosphorus,
		Potassium:   feed.Potassium,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.queue.PublishSensorReading(ctx, reading); err != nil {
		p.logger.Warn("publish polled reading failed", "entry_id", feed.EntryID, "error", err)
		p.metrics.RecordPollerSync(p.service, "error")
		return
	}

	p.lastEntryID = feed.EntryID
	p.metrics.RecordPollerSync(p.service, "published")
	p.logger.Debug("published polled reading", "entry_id", feed.EntryID)
}
