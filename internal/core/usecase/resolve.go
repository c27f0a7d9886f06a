package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
)

const (
	defaultLocation = "Hyderabad"
	defaultState    = "Telangana"
	defaultDistrict = "Warangal"
	defaultSoilType = "Loamy"
	defaultDeviceID = "web_client"
	defaultMoisture = 45.0

	// District averages used when the caller omits usage figures.
	districtAvgFertilizer = 120.0 // kg/ha
	districtAvgPesticide  = 0.5   // kg/ha

	telemetryAggregateWindow = 30
)

// FeatureResolver completes a partial recommendation request: telemetry
// prefill on demand, weather fill for missing atmospheric fields, defaults
// for everything else. Caller-supplied values are never overridden.
type FeatureResolver struct {
	weather   ports.WeatherProvider
	telemetry ports.TelemetrySource
	logger    *slog.Logger
}

func NewFeatureResolver(weather ports.WeatherProvider, telemetry ports.TelemetrySource, logger *slog.Logger) *FeatureResolver {
	return &FeatureResolver{
		weather:   weather,
		telemetry: telemetry,
		logger:    logger,
	}
}

func (r *FeatureResolver) Resolve(ctx context.Context, req domain.RecommendRequest) (domain.ResolvedParams, error) {
	if req.UseSensor && r.telemetry != nil {
		r.prefillFromTelemetry(ctx, &req)
	}

	location := stringOr(req.Location, defaultLocation)

	if req.Temperature == nil || req.Humidity == nil || req.Rainfall == nil {
		weather, err := r.weather.CurrentWeather(ctx, location)
		if err != nil {
			return domain.ResolvedParams{}, domain.WrapError(domain.ErrUpstreamUnavailable, "resolve weather", err)
		}
		if req.Temperature == nil {
			req.Temperature = &weather.Temperature
		}
		if req.Humidity == nil {
			req.Humidity = &weather.Humidity
		}
		if req.Rainfall == nil {
			req.Rainfall = &weather.Rainfall
		}
	}

	params := domain.ResolvedParams{
		N:           floatOr(req.N, 0),
		P:           floatOr(req.P, 0),
		K:           floatOr(req.K, 0),
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		PH:          floatOr(req.PH, 0),
		Rainfall:    *req.Rainfall,
		Moisture:    floatOr(req.Moisture, defaultMoisture),

		Location:        location,
		State:           stringOr(req.State, defaultState),
		District:        stringOr(req.District, defaultDistrict),
		Season:          req.Season,
		CropType:        req.CropType,
		SoilType:        stringOr(req.SoilType, defaultSoilType),
		Lang:            stringOr(req.Lang, "en"),
		DeviceID:        stringOr(req.DeviceID, defaultDeviceID),
		FertilizerUsage: floatOr(req.FertilizerUsage, districtAvgFertilizer),
		PesticideUsage:  floatOr(req.PesticideUsage, districtAvgPesticide),
	}

	if err := validateParams(params); err != nil {
		return domain.ResolvedParams{}, domain.WrapError(domain.ErrInvalidInput, "validate features", err)
	}
	return params, nil
}

// prefillFromTelemetry fills missing soil fields from the channel aggregate.
// Aggregation failure is not fatal; the request proceeds with whatever the
// caller supplied.
func (r *FeatureResolver) prefillFromTelemetry(ctx context.Context, req *domain.RecommendRequest) {
	agg, err := r.telemetry.Aggregate(ctx, telemetryAggregateWindow)
	if err != nil || agg == nil {
		r.logger.Warn("telemetry aggregate unavailable, skipping sensor prefill", "error", err)
		return
	}
	if req.N == nil {
		req.N = &agg.N
	}
	if req.P == nil {
		req.P = &agg.P
	}
	if req.K == nil {
		req.K = &agg.K
	}
	if req.PH == nil {
		req.PH = &agg.PH
	}
	if req.Temperature == nil {
		req.Temperature = &agg.Temperature
	}
	if req.Humidity == nil {
		req.Humidity = &agg.Humidity
	}
	if req.Moisture == nil {
		req.Moisture = &agg.Moisture
	}
}

func validateParams(p domain.ResolvedParams) error {
	switch {
	case p.N < 0 || p.P < 0 || p.K < 0:
		return fmt.Errorf("nutrient values must be non-negative")
	case p.PH < 0 || p.PH > 14:
		return fmt.Errorf("ph must be between 0 and 14, got %v", p.PH)
	case p.Humidity < 0 || p.Humidity > 100:
		return fmt.Errorf("humidity must be between 0 and 100, got %v", p.Humidity)
	case p.Moisture < 0 || p.Moisture > 100:
		return fmt.Errorf("moisture must be between 0 and 100, got %v", p.Moisture)
	case p.Rainfall < 0:
		return fmt.Errorf("rainfall must be non-negative, got %v", p.Rainfall)
	}
	return nil
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
