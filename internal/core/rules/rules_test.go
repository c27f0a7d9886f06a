package rules

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mittimitra/advisory/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyOverridePrecedence(t *testing.T) {
	cases := []struct {
		name         string
		in           domain.RecoveryInput
		mlPrediction string
		wantDecision string
		wantReason   string
	}{
		{
			name:         "high damage short window overrides any ML output",
			in:           domain.RecoveryInput{DamagePercentage: 85, DaysRemaining: 30, N: 45, DamageType: "Flood"},
			mlPrediction: domain.DecisionContinueRecovery,
			wantDecision: domain.DecisionFinancialRelief,
			wantReason:   "Override: Damage > 75% and insufficient time for recovery.",
		},
		{
			name:         "critical nitrogen with nutrient deficiency",
			in:           domain.RecoveryInput{DamagePercentage: 40, DaysRemaining: 50, N: 20, DamageType: "Nutrient Deficiency"},
			mlPrediction: domain.DecisionContinueRecovery,
			wantDecision: domain.DecisionSoilRestoration,
			wantReason:   "Override: Critical Nitrogen deficiency detected.",
		},
		{
			name:         "minor damage long window",
			in:           domain.RecoveryInput{DamagePercentage: 20, DaysRemaining: 80, N: 90, DamageType: "Pest Attack"},
			mlPrediction: domain.DecisionFinancialRelief,
			wantDecision: domain.DecisionContinueRecovery,
			wantReason:   "Override: Minor damage, sufficient time to recover.",
		},
		{
			name:         "timing gap resolves to ML proposal",
			in:           domain.RecoveryInput{DamagePercentage: 20, DaysRemaining: 50, N: 90, DamageType: "Flood"},
			mlPrediction: domain.DecisionReplantShortDuration,
			wantDecision: domain.DecisionReplantShortDuration,
			wantReason:   "ML Prediction accepted.",
		},
	}

	for _, tc := range cases {
		decision, reason := Apply(tc.in, tc.mlPrediction)
		if decision != tc.wantDecision {
			t.Fatalf("%s: decision = %s, want %s", tc.name, decision, tc.wantDecision)
		}
		if reason != tc.wantReason {
			t.Fatalf("%s: reason = %q, want %q", tc.name, reason, tc.wantReason)
		}
	}
}

func TestApplyBoundariesAreStrict(t *testing.T) {
	// Exactly 75% damage does not trip rule 1.
	decision, _ := Apply(domain.RecoveryInput{DamagePercentage: 75, DaysRemaining: 10, N: 90}, domain.DecisionContinueRecovery)
	if decision != domain.DecisionContinueRecovery {
		t.Fatalf("damage=75 must not fire rule 1, got %s", decision)
	}

	// N=30 does not trip rule 2 even with the matching damage type.
	decision, reason := Apply(domain.RecoveryInput{DamagePercentage: 40, DaysRemaining: 50, N: 30, DamageType: "Nutrient Deficiency"}, domain.DecisionContinueRecovery)
	if decision != domain.DecisionContinueRecovery || reason != "ML Prediction accepted." {
		t.Fatalf("N=30 must not fire rule 2, got %s (%s)", decision, reason)
	}

	// days_remaining=60 sits in the undefined gap and takes the ML default.
	decision, _ = Apply(domain.RecoveryInput{DamagePercentage: 20, DaysRemaining: 60, N: 90}, domain.DecisionSoilRestoration)
	if decision != domain.DecisionSoilRestoration {
		t.Fatalf("days=60 must not fire rule 3, got %s", decision)
	}
}

func TestEcoAdvisoryIsAdditive(t *testing.T) {
	notes := EcoAdvisory(domain.RecoveryInput{N: 40, DamageType: "Pest Attack", Moisture: 85})
	if len(notes) != 5 {
		t.Fatalf("expected 5 notes (2 nitrogen + 2 pest + 1 moisture), got %d: %+v", len(notes), notes)
	}
	if notes[0].Issue != "Low Nitrogen" || notes[0].Type != "Organic Fertilizer" {
		t.Fatalf("unexpected first note %+v", notes[0])
	}
	if notes[4].Issue != "High Moisture/Waterlogging" {
		t.Fatalf("unexpected last note %+v", notes[4])
	}

	none := EcoAdvisory(domain.RecoveryInput{N: 80, DamageType: "Flood", Moisture: 40})
	if len(none) != 0 {
		t.Fatalf("expected no notes, got %+v", none)
	}
}

func TestSchemeEligibilityDamageCriterion(t *testing.T) {
	s := NewSchemeService("", discardLogger())

	got := s.Eligible(domain.RecoveryInput{DamagePercentage: 60, DamageType: "Flood", N: 90})
	names := schemeNames(got)
	if !contains(names, "PMFBY (Pradhan Mantri Fasal Bima Yojana)") {
		t.Fatalf("expected PMFBY for 60%% flood damage, got %v", names)
	}
	if !contains(names, "NDRF Agricultural Input Subsidy") {
		t.Fatalf("expected NDRF subsidy for 60%% flood damage, got %v", names)
	}
	if contains(names, "Soil Health Card Scheme") {
		t.Fatalf("soil scheme must not match with N=90, got %v", names)
	}
}

func TestSchemeEligibilitySoilCriterion(t *testing.T) {
	s := NewSchemeService("", discardLogger())

	got := s.Eligible(domain.RecoveryInput{DamagePercentage: 10, DamageType: "Drought", N: 30})
	names := schemeNames(got)
	if !contains(names, "Soil Health Card Scheme") {
		t.Fatalf("expected soil scheme for N=30, got %v", names)
	}
	if contains(names, "PMFBY (Pradhan Mantri Fasal Bima Yojana)") {
		t.Fatalf("insurance must not match at 10%% damage, got %v", names)
	}
}

func TestSchemeEligibilityDeduplicates(t *testing.T) {
	s := NewSchemeService("", discardLogger())

	got := s.Eligible(domain.RecoveryInput{DamagePercentage: 90, DamageType: "Flood", N: 10})
	seen := map[string]int{}
	for _, scheme := range got {
		seen[scheme.SchemeName]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Fatalf("scheme %q returned %d times", name, n)
		}
	}
}

func schemeNames(schemes []domain.Scheme) []string {
	names := make([]string, 0, len(schemes))
	for _, s := range schemes {
		names = append(names, s.SchemeName)
	}
	return names
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
