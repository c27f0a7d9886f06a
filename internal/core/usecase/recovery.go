package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/core/rules"
	"github.com/mittimitra/advisory/internal/observability/metrics"
)

const mlAcceptedReason = "ML Prediction accepted."

// RecoveryUseCase assembles the recovery plan: classifier proposal, rule
// overrides, eco advisory, scheme eligibility and narrative explanation.
type RecoveryUseCase struct {
	classifier ports.RecoveryClassifier
	schemes    *rules.SchemeService
	narrative  ports.NarrativeGenerator
	metrics    *metrics.HTTPServerMetrics
	service    string
	logger     *slog.Logger
}

func NewRecoveryUseCase(
	classifier ports.RecoveryClassifier,
	schemes *rules.SchemeService,
	narrative ports.NarrativeGenerator,
	m *metrics.HTTPServerMetrics,
	service string,
	logger *slog.Logger,
) *RecoveryUseCase {
	return &RecoveryUseCase{
		classifier: classifier,
		schemes:    schemes,
		narrative:  narrative,
		metrics:    m,
		service:    service,
		logger:     logger,
	}
}

func (uc *RecoveryUseCase) Plan(ctx context.Context, req domain.RecoveryRequest) (*domain.RecoveryPlan, error) {
	if missing := missingRecoveryFields(req); len(missing) > 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate recovery request",
			fmt.Errorf("Missing required fields: [%s]", strings.Join(missing, ", ")))
	}

	in := domain.RecoveryInput{
		N:                *req.N,
		P:                req.P,
		K:                req.K,
		PH:               req.PH,
		Moisture:         req.Moisture,
		Temperature:      req.Temperature,
		Humidity:         req.Humidity,
		Rainfall:         req.Rainfall,
		DamageType:       *req.DamageType,
		DamagePercentage: *req.DamagePercentage,
		GrowthStage:      req.GrowthStage,
		DaysRemaining:    *req.DaysRemaining,
	}

	assessment, err := uc.classifier.Assess(in)
	if err != nil {
		uc.logger.Warn("recovery model path failed, serving expert-rule fallback", "error", err)
		uc.metrics.RecordPrediction(uc.service, "recovery", "fallback")
		assessment = uc.classifier.Fallback(in)
	} else {
		uc.metrics.RecordPrediction(uc.service, "recovery", "model")
	}

	decision, reason := rules.Apply(in, assessment.Prediction)
	if reason != mlAcceptedReason {
		uc.metrics.RecordRuleOverride(uc.service, reason)
		uc.logger.Info("rule engine override applied",
			"ml_prediction", assessment.Prediction,
			"decision", decision,
			"reason", reason,
		)
	}

	plan := &domain.RecoveryPlan{
		Decision:    decision,
		Confidence:  assessment.Confidence,
		Reason:      reason,
		MLAnalysis:  assessment,
		EcoAdvisory: rules.EcoAdvisory(in),
		Schemes:     uc.schemes.Eligible(in),
	}
	plan.Explanation = uc.explain(ctx, plan)
	return plan, nil
}

// explain asks the narrative collaborator for prose and falls back to a fixed
// template on any failure. It never returns an empty string.
func (uc *RecoveryUseCase) explain(ctx context.Context, plan *domain.RecoveryPlan) string {
	text, err := uc.narrative.GenerateExplanation(ctx, *plan)
	if err == nil && text != "" {
		return text
	}
	if err != nil {
		uc.logger.Warn("narrative generation failed, using templated explanation", "error", err)
		uc.metrics.RecordUpstreamFailure(uc.service, "narrative")
	}
	return templatedExplanation(plan)
}

func templatedExplanation(plan *domain.RecoveryPlan) string {
	ecoTip := "Use organic compost"
	if len(plan.EcoAdvisory) > 0 {
		ecoTip = plan.EcoAdvisory[0].Solution
	}
	return fmt.Sprintf(`**Situation Analysis**: The system has detected conditions requiring attention based on your inputs. The decision is to %s.

**Action Plan**:
1. Follow the recommended recovery steps immediately.
2. Monitor soil moisture and nutrient levels daily.
3. Consult with local agricultural extension officers if symptoms persist.

**Eco-Friendly Tip**: %s. This will help improve long-term soil health.

**Government Support**: Check eligibility for the schemes listed below, such as PMFBY, which can provide financial safety nets.

*(Note: This is a robust system-generated explanation because the AI service is currently unreachable)*`, plan.Decision, ecoTip)
}

func missingRecoveryFields(req domain.RecoveryRequest) []string {
	var missing []string
	if req.DamagePercentage == nil {
		missing = append(missing, "damage_percentage")
	}
	if req.DaysRemaining == nil {
		missing = append(missing, "days_remaining")
	}
	if req.N == nil {
		missing = append(missing, "N")
	}
	if req.DamageType == nil {
		missing = append(missing, "damage_type")
	}
	return missing
}
