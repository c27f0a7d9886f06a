package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/rules"
)

func newRecoveryUseCase(classifier *classifierFake, narrative *narrativeFake) *RecoveryUseCase {
	schemes := rules.NewSchemeService("", testLogger())
	return NewRecoveryUseCase(classifier, schemes, narrative, testMetrics(), "test", testLogger())
}

func validRecoveryRequest() domain.RecoveryRequest {
	return domain.RecoveryRequest{
		N:                ptr(45),
		P:                30,
		K:                40,
		PH:               6.5,
		Moisture:         50,
		Temperature:      28,
		Humidity:         65,
		Rainfall:         120,
		DamageType:       strptr("Flood"),
		DamagePercentage: ptr(55),
		GrowthStage:      2,
		DaysRemaining:    ptr(50),
	}
}

func TestRecoveryPlanMissingFields(t *testing.T) {
	uc := newRecoveryUseCase(&classifierFake{}, &narrativeFake{text: "ok"})

	_, err := uc.Plan(context.Background(), domain.RecoveryRequest{N: ptr(45)})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for _, field := range []string{"damage_percentage", "days_remaining", "damage_type"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error must list missing field %q, got %v", field, err)
		}
	}
	if strings.Contains(err.Error(), "[N") || strings.Contains(err.Error(), " N,") {
		t.Fatalf("error must not list provided fields, got %v", err)
	}
}

func TestRecoveryPlanRuleOverrideWins(t *testing.T) {
	classifier := &classifierFake{assessment: domain.RecoveryAssessment{
		Prediction: domain.DecisionContinueRecovery,
		Confidence: 0.91,
	}}
	uc := newRecoveryUseCase(classifier, &narrativeFake{text: "narrative"})

	req := validRecoveryRequest()
	req.DamagePercentage = ptr(85)
	req.DaysRemaining = ptr(30)

	plan, err := uc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.Decision != domain.DecisionFinancialRelief {
		t.Fatalf("decision = %s, want rule-1 override", plan.Decision)
	}
	if plan.Reason != "Override: Damage > 75% and insufficient time for recovery." {
		t.Fatalf("reason = %q", plan.Reason)
	}
	// The ML analysis keeps the original proposal for transparency.
	if plan.MLAnalysis.Prediction != domain.DecisionContinueRecovery {
		t.Fatalf("ml analysis mutated: %+v", plan.MLAnalysis)
	}
	if plan.Confidence != 0.91 {
		t.Fatalf("confidence = %v, want classifier confidence", plan.Confidence)
	}
}

func TestRecoveryPlanClassifierFailureUsesFallback(t *testing.T) {
	classifier := &classifierFake{err: errors.New("model artifact missing")}
	uc := newRecoveryUseCase(classifier, &narrativeFake{text: "narrative"})

	plan, err := uc.Plan(context.Background(), validRecoveryRequest())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if classifier.fallbackCalls != 1 {
		t.Fatalf("fallback not invoked on classifier error")
	}
	if plan.Decision == "" {
		t.Fatalf("plan must carry a decision, got %+v", plan)
	}
}

func TestRecoveryPlanAnnotations(t *testing.T) {
	classifier := &classifierFake{assessment: domain.RecoveryAssessment{
		Prediction: domain.DecisionContinueRecovery,
		Confidence: 0.8,
	}}
	uc := newRecoveryUseCase(classifier, &narrativeFake{text: "narrative"})

	req := validRecoveryRequest()
	req.N = ptr(40) // below 50: eco notes + soil-health scheme
	req.DamagePercentage = ptr(60)

	plan, err := uc.Plan(context.Background(), req)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.EcoAdvisory) != 2 {
		t.Fatalf("expected 2 nitrogen eco notes, got %+v", plan.EcoAdvisory)
	}
	if len(plan.Schemes) == 0 {
		t.Fatalf("expected eligible schemes for 60%% flood damage with low N")
	}
	if plan.Explanation != "narrative" {
		t.Fatalf("explanation = %q", plan.Explanation)
	}
}

func TestRecoveryPlanNarrativeFallbackNeverEmpty(t *testing.T) {
	classifier := &classifierFake{assessment: domain.RecoveryAssessment{
		Prediction: domain.DecisionSoilRestoration,
		Confidence: 0.8,
	}}
	uc := newRecoveryUseCase(classifier, &narrativeFake{err: errors.New("llm unreachable")})

	plan, err := uc.Plan(context.Background(), validRecoveryRequest())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if plan.Explanation == "" {
		t.Fatalf("templated explanation must never be empty")
	}
	if !strings.Contains(plan.Explanation, plan.Decision) {
		t.Fatalf("templated explanation must mention the decision, got %q", plan.Explanation)
	}
}
