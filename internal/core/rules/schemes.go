package rules

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/mittimitra/advisory/internal/core/domain"
)

//go:embed schemes.json
var defaultCatalog []byte

// SchemeService filters a static government-scheme catalog against the
// recovery input.
type SchemeService struct {
	schemes []domain.Scheme
	logger  *slog.Logger
}

// NewSchemeService loads the catalog from path when given, otherwise from the
// embedded default. A broken catalog file degrades to the embedded one.
func NewSchemeService(path string, logger *slog.Logger) *SchemeService {
	raw := defaultCatalog
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("scheme catalog unreadable, using embedded default", "path", path, "error", err)
		} else {
			raw = data
		}
	}

	var schemes []domain.Scheme
	if err := json.Unmarshal(raw, &schemes); err != nil {
		logger.Error("scheme catalog malformed, using embedded default", "error", err)
		_ = json.Unmarshal(defaultCatalog, &schemes)
	}
	return &SchemeService{schemes: schemes, logger: logger}
}

// Eligible returns the schemes matching the input. A scheme qualifies on the
// damage criterion (damage percentage meets the minimum and the damage type is
// listed) or on the soil-health criterion (catalog names a condition and soil
// nitrogen is below 50). Duplicates collapse to the first occurrence by name.
func (s *SchemeService) Eligible(in domain.RecoveryInput) []domain.Scheme {
	var matched []domain.Scheme
	for _, scheme := range s.schemes {
		crit := scheme.Eligibility
		if crit.MinDamagePercentage != nil &&
			in.DamagePercentage >= *crit.MinDamagePercentage &&
			containsDamageType(crit.TypesOfDamage, in.DamageType) {
			matched = append(matched, scheme)
			continue
		}
		if crit.SoilHealthCondition != "" && in.N < 50 {
			matched = append(matched, scheme)
		}
	}

	seen := make(map[string]bool, len(matched))
	unique := matched[:0]
	for _, scheme := range matched {
		if seen[scheme.SchemeName] {
			continue
		}
		seen[scheme.SchemeName] = true
		unique = append(unique, scheme)
	}
	return unique
}

func containsDamageType(types []string, damageType string) bool {
	for _, t := range types {
		if t == damageType {
			return true
		}
	}
	return false
}
