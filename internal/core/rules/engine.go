package rules

import "github.com/mittimitra/advisory/internal/core/domain"

// Override reasons returned alongside the decision. The rule engine always
// wins over the classifier when a rule matches.
const (
	reasonHighDamageLowTime = "Override: Damage > 75% and insufficient time for recovery."
	reasonCriticalNitrogen  = "Override: Critical Nitrogen deficiency detected."
	reasonMinorDamage       = "Override: Minor damage, sufficient time to recover."
	reasonMLAccepted        = "ML Prediction accepted."
)

// Apply evaluates the override rules in priority order, first match wins.
// Boundaries are strict; inputs falling in the 40-60 day gap take the
// classifier's proposal.
func Apply(in domain.RecoveryInput, mlPrediction string) (decision, reason string) {
	if in.DamagePercentage > 75 && in.DaysRemaining < 40 {
		return domain.DecisionFinancialRelief, reasonHighDamageLowTime
	}
	if in.N < 30 && in.DamageType == "Nutrient Deficiency" {
		return domain.DecisionSoilRestoration, reasonCriticalNitrogen
	}
	if in.DamagePercentage < 30 && in.DaysRemaining > 60 {
		return domain.DecisionContinueRecovery, reasonMinorDamage
	}
	return mlPrediction, reasonMLAccepted
}
