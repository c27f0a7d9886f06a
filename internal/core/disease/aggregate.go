package disease

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mittimitra/advisory/internal/core/domain"
)

const uncertaintyThreshold = 0.70

// Aggregate applies majority voting over per-image classifier votes. Ties on
// vote count resolve by highest mean confidence (rounded to 4 decimals to keep
// floating point noise from flipping the result), then by lexicographically
// smallest disease name. A winner below the uncertainty threshold reports
// "Uncertain" with fixed guidance instead of a diagnosis.
func Aggregate(votes []domain.DiseaseVote) (domain.DiseaseVerdict, error) {
	if len(votes) == 0 {
		return domain.DiseaseVerdict{}, domain.WrapError(domain.ErrInvalidInput, "aggregate disease votes",
			fmt.Errorf("no votes provided"))
	}

	counts := make(map[string]int)
	confSums := make(map[string]float64)
	for _, v := range votes {
		counts[v.DiseaseName]++
		confSums[v.DiseaseName] += v.Confidence
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	candidates := make([]string, 0, len(counts))
	for name, c := range counts {
		if c == maxCount {
			candidates = append(candidates, name)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci := round4(confSums[candidates[i]] / float64(counts[candidates[i]]))
		cj := round4(confSums[candidates[j]] / float64(counts[candidates[j]]))
		if ci != cj {
			return ci > cj
		}
		return candidates[i] < candidates[j]
	})
	winner := candidates[0]

	confidence := confSums[winner] / float64(counts[winner])
	percent := formatPercent(confidence)

	if confidence < uncertaintyThreshold {
		return domain.DiseaseVerdict{
			Disease:       "Uncertain",
			Confidence:    percent,
			Explanation:   "Disease detection is uncertain. Please upload clearer images.",
			TreatmentPlan: "N/A",
			PreventionTips: []string{
				"Ensure images are well-lit",
				"Focus clearly on the affected leaf",
				"Capture multiple angles of the symptom",
			},
		}, nil
	}

	info := lookup(winner)
	treatment := info.Treatment
	if strings.Contains(strings.ToLower(winner), "healthy") {
		treatment = "N/A"
	}
	return domain.DiseaseVerdict{
		Disease:        strings.ReplaceAll(winner, "_", " "),
		Confidence:     percent,
		Explanation:    info.Explanation,
		TreatmentPlan:  treatment,
		PreventionTips: info.Prevention,
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// formatPercent renders the winner's mean confidence rounded to 2 decimals
// with at least one decimal place ("90.0%", "83.33%").
func formatPercent(confidence float64) string {
	value := math.Round(confidence*10000) / 100
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}
