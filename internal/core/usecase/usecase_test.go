package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *metrics.HTTPServerMetrics {
	return metrics.NewHTTPServerMetrics("test")
}

type weatherFake struct {
	weather  domain.Weather
	err      error
	requests []string
}

func (f *weatherFake) CurrentWeather(_ context.Context, location string) (domain.Weather, error) {
	f.requests = append(f.requests, location)
	if f.err != nil {
		return domain.Weather{}, f.err
	}
	return f.weather, nil
}

type telemetryFake struct {
	latest *domain.TelemetryFeed
	agg    *domain.TelemetryAggregate
	err    error
}

func (f *telemetryFake) Latest(context.Context) (*domain.TelemetryFeed, error) {
	return f.latest, f.err
}

func (f *telemetryFake) Aggregate(context.Context, int) (*domain.TelemetryAggregate, error) {
	return f.agg, f.err
}

type cropFake struct {
	candidates    []domain.CropCandidate
	err           error
	fallback      []domain.CropCandidate
	fallbackCalls int
}

func (f *cropFake) Predict(domain.FeatureVector, int, string, string) ([]domain.CropCandidate, error) {
	return f.candidates, f.err
}

func (f *cropFake) Fallback(domain.FeatureVector, int, string, string) []domain.CropCandidate {
	f.fallbackCalls++
	return f.fallback
}

type fertilizerFake struct {
	result domain.FertilizerResult
	err    error
	inputs []ports.FertilizerInput
}

func (f *fertilizerFake) Recommend(in ports.FertilizerInput) (domain.FertilizerResult, error) {
	f.inputs = append(f.inputs, in)
	return f.result, f.err
}

func (f *fertilizerFake) Fallback(ports.FertilizerInput) domain.FertilizerResult {
	return domain.FertilizerResult{Fertilizer: "Balanced NPK", Confidence: 0.75}
}

type yieldFake struct {
	value  float64
	err    error
	inputs []ports.YieldInput
}

func (f *yieldFake) Predict(in ports.YieldInput) (float64, error) {
	f.inputs = append(f.inputs, in)
	return f.value, f.err
}

func (f *yieldFake) Fallback(ports.YieldInput) float64 { return 3.3 }

type predictionStoreFake struct {
	stored []domain.StoredPrediction
	err    error
	recent []domain.StoredPrediction
	stats  map[string]int
}

func (f *predictionStoreFake) StoreCropPrediction(_ context.Context, p domain.StoredPrediction) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, p)
	return nil
}

func (f *predictionStoreFake) RecentPredictions(context.Context, string, int) ([]domain.StoredPrediction, error) {
	return f.recent, f.err
}

func (f *predictionStoreFake) CropStatistics(context.Context, int) (map[string]int, error) {
	return f.stats, f.err
}

type classifierFake struct {
	assessment    domain.RecoveryAssessment
	err           error
	fallbackCalls int
}

func (f *classifierFake) Assess(domain.RecoveryInput) (domain.RecoveryAssessment, error) {
	return f.assessment, f.err
}

func (f *classifierFake) Fallback(domain.RecoveryInput) domain.RecoveryAssessment {
	f.fallbackCalls++
	return domain.RecoveryAssessment{
		Prediction: domain.DecisionContinueRecovery,
		Confidence: 0.70,
	}
}

type narrativeFake struct {
	text string
	err  error
}

func (f *narrativeFake) GenerateExplanation(context.Context, domain.RecoveryPlan) (string, error) {
	return f.text, f.err
}

type queueFake struct {
	published []domain.SensorReading
	err       error
}

func (f *queueFake) PublishSensorReading(_ context.Context, r domain.SensorReading) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, r)
	return nil
}

func (f *queueFake) SubscribeSensorReadings(context.Context, func(context.Context, domain.SensorReading) error) error {
	return nil
}

type readingStoreFake struct {
	latest *domain.SensorReading
	err    error
}

func (f *readingStoreFake) Insert(context.Context, domain.SensorReading) error { return f.err }

func (f *readingStoreFake) Latest(context.Context) (*domain.SensorReading, error) {
	return f.latest, f.err
}

func ptr(v float64) *float64 { return &v }

func strptr(v string) *string { return &v }
