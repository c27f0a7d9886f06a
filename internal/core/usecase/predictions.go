package usecase

import (
	"context"
	"fmt"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
)

const (
	defaultRecentLimit    = 20
	defaultStatisticsDays = 30
)

// PredictionQueryUseCase serves read paths over stored crop predictions.
type PredictionQueryUseCase struct {
	store ports.PredictionStore
}

func NewPredictionQueryUseCase(store ports.PredictionStore) *PredictionQueryUseCase {
	return &PredictionQueryUseCase{store: store}
}

func (uc *PredictionQueryUseCase) Recent(ctx context.Context, deviceID string, limit int) ([]domain.StoredPrediction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	predictions, err := uc.store.RecentPredictions(ctx, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch recent predictions: %w", err)
	}
	return predictions, nil
}

// Statistics returns crop frequency counts over a trailing window of days.
func (uc *PredictionQueryUseCase) Statistics(ctx context.Context, days int) (map[string]int, error) {
	if days <= 0 {
		days = defaultStatisticsDays
	}
	stats, err := uc.store.CropStatistics(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetch crop statistics: %w", err)
	}
	return stats, nil
}
