package domain

// DiseaseVote is one per-image classifier verdict submitted for aggregation.
type DiseaseVote struct {
	ImageID     string  `json:"image_id,omitempty"`
	DiseaseName string  `json:"disease_name"`
	Confidence  float64 `json:"confidence_score"`
}

// DiseaseVerdict is the majority-vote outcome over a batch of votes, enriched
// from the static knowledge base.
type DiseaseVerdict struct {
	Disease        string   `json:"final_disease"`
	Confidence     string   `json:"final_confidence"`
	Explanation    string   `json:"explanation"`
	TreatmentPlan  string   `json:"treatment_plan"`
	PreventionTips []string `json:"prevention_tips"`
}
