package predictor

import (
	"log/slog"
	"sort"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/ml"
)

// Column order the recovery model was trained with.
var recoveryFeatureNames = []string{
	"N", "P", "K", "ph", "moisture", "temperature", "humidity", "rainfall",
	"damage_type", "damage_percentage", "growth_stage", "days_remaining",
}

const fallbackRecoveryConfidence = 0.70

type RecoveryModel struct {
	forest        *ml.Forest
	damageEncoder *ml.LabelEncoder
	logger        *slog.Logger
	modelErr      error
}

func NewRecoveryModel(dir *artifacts.Dir, logger *slog.Logger) *RecoveryModel {
	// The damage-type encoder was fitted over the fixed enum, which sorts
	// the classes lexicographically.
	damageTypes := domain.DamageTypes()
	sorted := append([]string{}, damageTypes...)
	sort.Strings(sorted)

	m := &RecoveryModel{
		damageEncoder: &ml.LabelEncoder{Classes: sorted},
		logger:        logger,
	}

	var forest ml.Forest
	if err := dir.Load("recovery_model.json", &forest); err != nil {
		m.modelErr = err
		logger.Warn("recovery model artifact unavailable, fallback path active", "error", err)
		return m
	}
	m.forest = &forest
	return m
}

func (m *RecoveryModel) Assess(in domain.RecoveryInput) (domain.RecoveryAssessment, error) {
	if m.modelErr != nil {
		return domain.RecoveryAssessment{}, m.modelErr
	}

	damageType := in.DamageType
	if !m.damageEncoder.Contains(damageType) {
		// Unknown damage types coerce to the first enum entry.
		damageType = domain.DamageTypes()[0]
	}
	damageCode, _ := m.damageEncoder.Encode(damageType)

	features := []float64{
		in.N, in.P, in.K, in.PH, in.Moisture, in.Temperature, in.Humidity, in.Rainfall,
		float64(damageCode), in.DamagePercentage, in.GrowthStage, in.DaysRemaining,
	}
	probs, err := m.forest.PredictProba(features)
	if err != nil {
		return domain.RecoveryAssessment{}, domain.WrapError(domain.ErrModelUnavailable, "recovery inference", err)
	}

	best := 0
	probabilities := make(map[string]float64, len(probs))
	for i, p := range probs {
		probabilities[m.forest.Classes[i]] = p
		if p > probs[best] {
			best = i
		}
	}

	importance := make(map[string]float64, len(recoveryFeatureNames))
	for i, name := range recoveryFeatureNames {
		if i < len(m.forest.Importances) {
			importance[name] = m.forest.Importances[i]
		}
	}

	return domain.RecoveryAssessment{
		Prediction:        m.forest.Classes[best],
		Confidence:        probs[best],
		Probabilities:     probabilities,
		FeatureImportance: importance,
	}, nil
}

// Fallback reproduces the expert labelling rules the model was bootstrapped
// from, so degraded operation stays close to trained behavior.
func (m *RecoveryModel) Fallback(in domain.RecoveryInput) domain.RecoveryAssessment {
	var decision string
	switch {
	case in.DamagePercentage > 70 && in.DaysRemaining < 45:
		decision = domain.DecisionFinancialRelief
	case in.DamagePercentage > 50 && in.DaysRemaining > 60:
		decision = domain.DecisionReplantShortDuration
	case in.N < 40 || in.DamageType == "Nutrient Deficiency":
		decision = domain.DecisionSoilRestoration
	default:
		decision = domain.DecisionContinueRecovery
	}

	labels := domain.DecisionLabels()
	rest := (1 - fallbackRecoveryConfidence) / float64(len(labels)-1)
	probabilities := make(map[string]float64, len(labels))
	for _, label := range labels {
		if label == decision {
			probabilities[label] = fallbackRecoveryConfidence
		} else {
			probabilities[label] = rest
		}
	}

	importance := make(map[string]float64, len(recoveryFeatureNames))
	for _, name := range recoveryFeatureNames {
		importance[name] = 1.0 / float64(len(recoveryFeatureNames))
	}

	return domain.RecoveryAssessment{
		Prediction:        decision,
		Confidence:        fallbackRecoveryConfidence,
		Probabilities:     probabilities,
		FeatureImportance: importance,
	}
}
