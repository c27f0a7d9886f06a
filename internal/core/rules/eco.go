package rules

import "github.com/mittimitra/advisory/internal/core/domain"

// EcoAdvisory returns sustainable-practice notes keyed by threshold checks.
// Checks are independent and additive, unlike the override rules.
func EcoAdvisory(in domain.RecoveryInput) []domain.AdvisoryNote {
	var notes []domain.AdvisoryNote

	if in.N < 50 {
		notes = append(notes,
			domain.AdvisoryNote{
				Issue:    "Low Nitrogen",
				Solution: "Use compost or vermicompost.",
				Type:     "Organic Fertilizer",
			},
			domain.AdvisoryNote{
				Issue:    "Nitrogen Deficiency",
				Solution: "Plant leguminous crops (beans, peas) for natural N-fixation.",
				Type:     "Crop Rotation",
			},
		)
	}

	if in.DamageType == "Pest Attack" {
		notes = append(notes,
			domain.AdvisoryNote{
				Issue:    "Pest Attack",
				Solution: "Spray Neem Oil solution (5ml/liter water).",
				Type:     "Natural Pesticide",
			},
			domain.AdvisoryNote{
				Issue:    "Pest Control",
				Solution: "Introduce beneficial insects like Ladybugs.",
				Type:     "Biological Control",
			},
		)
	}

	if in.Moisture > 80 {
		notes = append(notes, domain.AdvisoryNote{
			Issue:    "High Moisture/Waterlogging",
			Solution: "Improve drainage by digging channels.",
			Type:     "Water Management",
		})
	}

	return notes
}
