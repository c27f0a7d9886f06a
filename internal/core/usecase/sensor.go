package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
)

// SensorUseCase handles device telemetry: ingest publishes readings to the
// queue for the worker to persist; reads go straight to the store and the
// upstream channel.
type SensorUseCase struct {
	queue     ports.SensorQueue
	readings  ports.SensorReadingStore
	telemetry ports.TelemetrySource
	now       func() time.Time
}

func NewSensorUseCase(queue ports.SensorQueue, readings ports.SensorReadingStore, telemetry ports.TelemetrySource) *SensorUseCase {
	return &SensorUseCase{
		queue:     queue,
		readings:  readings,
		telemetry: telemetry,
		now:       time.Now,
	}
}

func (uc *SensorUseCase) Ingest(ctx context.Context, reading domain.SensorReading) (domain.SensorReading, error) {
	if reading.DeviceID == "" {
		reading.DeviceID = "MM-POLE-001"
	}
	if err := validateReading(reading); err != nil {
		return domain.SensorReading{}, domain.WrapError(domain.ErrInvalidInput, "validate sensor reading", err)
	}

	reading.ID = uuid.NewString()
	reading.CreatedAt = uc.now().UTC()

	if err := uc.queue.PublishSensorReading(ctx, reading); err != nil {
		return domain.SensorReading{}, domain.WrapError(domain.ErrUpstreamUnavailable, "publish sensor reading", err)
	}
	return reading, nil
}

func (uc *SensorUseCase) Latest(ctx context.Context) (*domain.SensorReading, error) {
	reading, err := uc.readings.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest reading: %w", err)
	}
	if reading == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "fetch latest reading",
			fmt.Errorf("no sensor readings found"))
	}
	return reading, nil
}

func (uc *SensorUseCase) Aggregate(ctx context.Context) (*domain.TelemetryAggregate, error) {
	agg, err := uc.telemetry.Aggregate(ctx, telemetryAggregateWindow)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamUnavailable, "aggregate telemetry", err)
	}
	return agg, nil
}

func validateReading(r domain.SensorReading) error {
	switch {
	case r.SoilPH < 0 || r.SoilPH > 14:
		return fmt.Errorf("ph must be between 0 and 14, got %v", r.SoilPH)
	case r.Humidity < 0 || r.Humidity > 100:
		return fmt.Errorf("humidity must be between 0 and 100, got %v", r.Humidity)
	case r.Moisture < 0 || r.Moisture > 100:
		return fmt.Errorf("moisture must be between 0 and 100, got %v", r.Moisture)
	case r.Nitrogen < 0 || r.Phosphorus < 0 || r.Potassium < 0:
		return fmt.Errorf("nutrient values must be non-negative")
	}
	return nil
}
