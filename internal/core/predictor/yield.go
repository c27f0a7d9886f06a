package predictor

import (
	"log/slog"
	"strings"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/ml"
)

// Base yields in tons/ha for the rule-based estimate.
var baseYields = map[string]float64{
	"rice":      4.0,
	"paddy":     4.0,
	"wheat":     3.5,
	"maize":     5.0,
	"cotton":    2.0,
	"sugarcane": 70.0,
	"millet":    1.5,
	"groundnut": 2.5,
	"coffee":    1.0,
}

const defaultBaseYield = 3.0

type YieldPredictor struct {
	forest   *ml.Forest
	scaler   *ml.Scaler
	encoders map[string]*ml.LabelEncoder
	logger   *slog.Logger
	modelErr error
}

func NewYieldPredictor(dir *artifacts.Dir, logger *slog.Logger) *YieldPredictor {
	p := &YieldPredictor{logger: logger}

	var forest ml.Forest
	if err := dir.Load("yield_model.json", &forest); err != nil {
		p.modelErr = err
		logger.Warn("yield model artifact unavailable, fallback path active", "error", err)
		return p
	}
	var scaler ml.Scaler
	if err := dir.Load("yield_scaler.json", &scaler); err != nil {
		p.modelErr = err
		logger.Warn("yield scaler artifact unavailable, fallback path active", "error", err)
		return p
	}
	var encoders map[string]*ml.LabelEncoder
	if err := dir.Load("yield_encoders.json", &encoders); err != nil {
		p.modelErr = err
		logger.Warn("yield encoders artifact unavailable, fallback path active", "error", err)
		return p
	}
	p.forest = &forest
	p.scaler = &scaler
	p.encoders = encoders
	return p
}

func (p *YieldPredictor) Predict(in ports.YieldInput) (float64, error) {
	if p.modelErr != nil {
		return 0, p.modelErr
	}

	features := []float64{
		p.encode("State", in.State),
		p.encode("District", in.District),
		p.encode("Crop", in.Crop),
		p.encode("Season", in.Season),
	}
	// Soil type only participates when the model was trained with it.
	if _, ok := p.encoders["Soil_Type"]; ok {
		soil := in.SoilType
		if soil == "" {
			soil = "Clayey"
		}
		features = append(features, p.encode("Soil_Type", soil))
	}

	scaled, err := p.scaler.Transform([]float64{in.Rainfall, in.Fertilizer, in.Pesticide})
	if err != nil {
		return 0, domain.WrapError(domain.ErrModelUnavailable, "scale yield features", err)
	}
	features = append(features, scaled...)

	value, err := p.forest.PredictValue(features)
	if err != nil {
		return 0, domain.WrapError(domain.ErrModelUnavailable, "yield inference", err)
	}
	return round2(value), nil
}

// Fallback estimates from per-crop base yields with multiplicative rainfall
// and fertilizer adjustments.
func (p *YieldPredictor) Fallback(in ports.YieldInput) float64 {
	crop := strings.ToLower(in.Crop)
	if crop == "" {
		crop = "rice"
	}
	estimate, ok := baseYields[crop]
	if !ok {
		estimate = defaultBaseYield
	}

	switch {
	case in.Rainfall < 50:
		estimate *= 0.8
	case in.Rainfall > 200:
		estimate *= 0.9
	default:
		estimate *= 1.1
	}

	if in.Fertilizer < 50 {
		estimate *= 0.9
	} else if in.Fertilizer > 150 {
		estimate *= 1.1
	}

	return round2(estimate)
}

// encode maps a categorical value; unseen labels degrade to code 0 with a
// warning rather than failing the prediction.
func (p *YieldPredictor) encode(column, value string) float64 {
	enc, ok := p.encoders[column]
	if !ok || enc == nil {
		return 0
	}
	code, seen := enc.Encode(value)
	if !seen {
		p.logger.Warn("unseen categorical label, using default encoding", "column", column, "value", value)
		return 0
	}
	return float64(code)
}
