package ports

import (
	"context"
	"encoding/json"

	"github.com/mittimitra/advisory/internal/core/domain"
)

// FertilizerInput is the full 8-feature context one recommendation needs.
type FertilizerInput struct {
	Temperature float64
	Humidity    float64
	Moisture    float64
	SoilType    string
	Crop        string
	Nitrogen    float64
	Potassium   float64
	Phosphorous float64
	Lang        string
}

type YieldInput struct {
	State      string
	District   string
	Crop       string
	Season     string
	Rainfall   float64
	Fertilizer float64
	Pesticide  float64
	SoilType   string
}

// Predictors expose the model path and the deterministic fallback separately
// so the orchestrator decides when to degrade and the degradation stays
// observable. Fallbacks are total functions and never fail.

type CropRecommender interface {
	Predict(features domain.FeatureVector, topN int, lang, cropType string) ([]domain.CropCandidate, error)
	Fallback(features domain.FeatureVector, topN int, lang, cropType string) []domain.CropCandidate
}

type FertilizerAdvisor interface {
	Recommend(in FertilizerInput) (domain.FertilizerResult, error)
	Fallback(in FertilizerInput) domain.FertilizerResult
}

type YieldEstimator interface {
	Predict(in YieldInput) (float64, error)
	Fallback(in YieldInput) float64
}

type RecoveryClassifier interface {
	Assess(in domain.RecoveryInput) (domain.RecoveryAssessment, error)
	Fallback(in domain.RecoveryInput) domain.RecoveryAssessment
}

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, location string) (domain.Weather, error)
}

type TelemetrySource interface {
	Latest(ctx context.Context) (*domain.TelemetryFeed, error)
	Aggregate(ctx context.Context, results int) (*domain.TelemetryAggregate, error)
}

type PredictionStore interface {
	StoreCropPrediction(ctx context.Context, p domain.StoredPrediction) error
	RecentPredictions(ctx context.Context, deviceID string, limit int) ([]domain.StoredPrediction, error)
	CropStatistics(ctx context.Context, days int) (map[string]int, error)
}

type SensorReadingStore interface {
	Insert(ctx context.Context, reading domain.SensorReading) error
	Latest(ctx context.Context) (*domain.SensorReading, error)
}

type SensorQueue interface {
	PublishSensorReading(ctx context.Context, reading domain.SensorReading) error
	SubscribeSensorReadings(ctx context.Context, handler func(context.Context, domain.SensorReading) error) error
}

type Translator interface {
	Translate(text, lang string) string
}

type NarrativeGenerator interface {
	GenerateExplanation(ctx context.Context, plan domain.RecoveryPlan) (string, error)
}

type SMSGateway interface {
	Send(ctx context.Context, phone, message string) (json.RawMessage, int, error)
}
