package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

const topCropCandidates = 3

// RecommendUseCase runs the cascaded pipeline: resolve features, rank crops,
// then fan each candidate out to the fertilizer and yield predictors.
type RecommendUseCase struct {
	resolver   *FeatureResolver
	crops      ports.CropRecommender
	fertilizer ports.FertilizerAdvisor
	yield      ports.YieldEstimator
	store      ports.PredictionStore
	metrics    *metrics.HTTPServerMetrics
	service    string
	logger     *slog.Logger
	now        func() time.Time
}

func NewRecommendUseCase(
	resolver *FeatureResolver,
	crops ports.CropRecommender,
	fertilizer ports.FertilizerAdvisor,
	yield ports.YieldEstimator,
	store ports.PredictionStore,
	m *metrics.HTTPServerMetrics,
	service string,
	logger *slog.Logger,
) *RecommendUseCase {
	return &RecommendUseCase{
		resolver:   resolver,
		crops:      crops,
		fertilizer: fertilizer,
		yield:      yield,
		store:      store,
		metrics:    m,
		service:    service,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *RecommendUseCase) Recommend(ctx context.Context, req domain.RecommendRequest) (*domain.RecommendationSet, error) {
	params, err := uc.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if params.Season == "" {
		params.Season = detectSeason(uc.now())
	}

	features := params.Features()
	candidates, err := uc.crops.Predict(features, topCropCandidates, params.Lang, params.CropType)
	source := "model"
	if err != nil {
		uc.logger.Warn("crop model path failed, serving deterministic fallback", "error", err)
		uc.metrics.RecordPrediction(uc.service, "crop", "fallback")
		source = "fallback"
		candidates = uc.crops.Fallback(features, topCropCandidates, params.Lang, params.CropType)
	} else {
		uc.metrics.RecordPrediction(uc.service, "crop", "model")
	}

	if len(candidates) == 0 {
		return nil, domain.WrapError(domain.ErrPredictionEmpty, "crop prediction",
			fmt.Errorf("no candidates for features %v", features))
	}

	recommendations := make([]domain.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		recommendations = append(recommendations, domain.Recommendation{
			Crop:       candidate,
			Fertilizer: uc.recommendFertilizer(params, candidate.Crop),
			Yield:      uc.estimateYield(params, candidate.Crop),
		})
	}

	uc.storeTopCandidate(ctx, params, candidates[0])

	uc.logger.Info("recommendation served",
		"candidates", len(recommendations),
		"crop_source", source,
		"season", params.Season,
		"lang", params.Lang,
	)
	return &domain.RecommendationSet{
		Status:          "success",
		Recommendations: recommendations,
		UsedParams:      params,
	}, nil
}

func (uc *RecommendUseCase) recommendFertilizer(params domain.ResolvedParams, crop string) domain.FertilizerResult {
	in := ports.FertilizerInput{
		Temperature: params.Temperature,
		Humidity:    params.Humidity,
		Moisture:    params.Moisture,
		SoilType:    params.SoilType,
		Crop:        crop,
		Nitrogen:    params.N,
		Potassium:   params.K,
		Phosphorous: params.P,
		Lang:        params.Lang,
	}
	result, err := uc.fertilizer.Recommend(in)
	if err != nil {
		uc.logger.Warn("fertilizer model path failed, serving rule-based fallback", "crop", crop, "error", err)
		uc.metrics.RecordPrediction(uc.service, "fertilizer", "fallback")
		return uc.fertilizer.Fallback(in)
	}
	uc.metrics.RecordPrediction(uc.service, "fertilizer", "model")
	return result
}

func (uc *RecommendUseCase) estimateYield(params domain.ResolvedParams, crop string) domain.YieldEstimate {
	in := ports.YieldInput{
		State:      params.State,
		District:   params.District,
		Crop:       crop,
		Season:     params.Season,
		Rainfall:   params.Rainfall,
		Fertilizer: params.FertilizerUsage,
		Pesticide:  params.PesticideUsage,
		SoilType:   params.SoilType,
	}
	value, err := uc.yield.Predict(in)
	if err != nil {
		uc.logger.Warn("yield model path failed, serving base-table fallback", "crop", crop, "error", err)
		uc.metrics.RecordPrediction(uc.service, "yield", "fallback")
		value = uc.yield.Fallback(in)
	} else {
		uc.metrics.RecordPrediction(uc.service, "yield", "model")
	}
	return domain.YieldEstimate{
		PredictedYield: value,
		Unit:           "tons/ha",
		Season:         params.Season,
	}
}

// storeTopCandidate persists the top-ranked crop only. Best effort: a storage
// failure is logged and counted, never surfaced.
func (uc *RecommendUseCase) storeTopCandidate(ctx context.Context, params domain.ResolvedParams, top domain.CropCandidate) {
	if uc.store == nil {
		return
	}
	err := uc.store.StoreCropPrediction(ctx, domain.StoredPrediction{
		ID:             uuid.NewString(),
		DeviceID:       params.DeviceID,
		City:           params.Location,
		Nitrogen:       params.N,
		Phosphorus:     params.P,
		Potassium:      params.K,
		PH:             params.PH,
		Temperature:    params.Temperature,
		Humidity:       params.Humidity,
		Rainfall:       params.Rainfall,
		PredictedCrop:  top.Crop,
		Confidence:     top.Confidence,
		TranslatedCrop: top.TranslatedCrop,
		CreatedAt:      uc.now().UTC(),
	})
	if err != nil {
		uc.logger.Warn("storing top crop prediction failed", "crop", top.Crop, "error", err)
		uc.metrics.RecordStorageFailure(uc.service)
	}
}

// detectSeason maps the calendar month onto the Indian cropping seasons:
// June-September Kharif, October-February Rabi, the rest Zaid.
func detectSeason(t time.Time) string {
	month := int(t.Month())
	switch {
	case month >= 6 && month <= 9:
		return "Kharif"
	case month >= 10 || month <= 2:
		return "Rabi"
	default:
		return "Zaid"
	}
}
