package domain

// Canonical recovery decisions produced by the classifier and the rule engine.
const (
	DecisionReplantShortDuration = "REPLANT_SHORT_DURATION_CROP"
	DecisionContinueRecovery     = "CONTINUE_WITH_RECOVERY_PLAN"
	DecisionSoilRestoration      = "SOIL_RESTORATION_REQUIRED"
	DecisionFinancialRelief      = "FINANCIAL_RELIEF_RECOMMENDED"
)

func DecisionLabels() []string {
	return []string{
		DecisionReplantShortDuration,
		DecisionContinueRecovery,
		DecisionSoilRestoration,
		DecisionFinancialRelief,
	}
}

// DamageTypes in the order the recovery model was trained with. Unknown
// damage types are coerced to the first entry before encoding.
func DamageTypes() []string {
	return []string{"Flood", "Drought", "Pest Attack", "Disease", "Nutrient Deficiency", "Wind Damage"}
}

// RecoveryRequest is the raw caller input. Pointers mark the four required
// fields so absence fails fast with a 400.
type RecoveryRequest struct {
	N                *float64 `json:"N"`
	P                float64  `json:"P"`
	K                float64  `json:"K"`
	PH               float64  `json:"ph"`
	Moisture         float64  `json:"moisture"`
	Temperature      float64  `json:"temperature"`
	Humidity         float64  `json:"humidity"`
	Rainfall         float64  `json:"rainfall"`
	DamageType       *string  `json:"damage_type"`
	DamagePercentage *float64 `json:"damage_percentage"`
	GrowthStage      float64  `json:"growth_stage"`
	DaysRemaining    *float64 `json:"days_remaining"`
}

// RecoveryInput is the validated, fully populated model input.
type RecoveryInput struct {
	N                float64
	P                float64
	K                float64
	PH               float64
	Moisture         float64
	Temperature      float64
	Humidity         float64
	Rainfall         float64
	DamageType       string
	DamagePercentage float64
	GrowthStage      float64
	DaysRemaining    float64
}

// RecoveryAssessment is the classifier output before rule overrides.
type RecoveryAssessment struct {
	Prediction        string             `json:"prediction"`
	Confidence        float64            `json:"confidence"`
	Probabilities     map[string]float64 `json:"probabilities"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

type AdvisoryNote struct {
	Issue    string `json:"issue"`
	Solution string `json:"solution"`
	Type     string `json:"type"`
}

type Scheme struct {
	SchemeName  string            `json:"scheme_name"`
	Description string            `json:"description,omitempty"`
	Benefit     string            `json:"benefit,omitempty"`
	Eligibility SchemeEligibility `json:"eligibility"`
}

type SchemeEligibility struct {
	MinDamagePercentage *float64 `json:"min_damage_percentage,omitempty"`
	TypesOfDamage       []string `json:"types_of_damage,omitempty"`
	SoilHealthCondition string   `json:"soil_health_condition,omitempty"`
}

// RecoveryPlan is the consolidated response assembled by the recovery manager.
type RecoveryPlan struct {
	Decision    string             `json:"decision"`
	Confidence  float64            `json:"confidence"`
	Reason      string             `json:"reason"`
	MLAnalysis  RecoveryAssessment `json:"ml_analysis"`
	EcoAdvisory []AdvisoryNote     `json:"eco_advisory"`
	Schemes     []Scheme           `json:"schemes"`
	Explanation string             `json:"llm_explanation"`
}
