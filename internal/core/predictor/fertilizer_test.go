package predictor

import (
	"strings"
	"testing"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
)

func newFallbackFertilizerRecommender(t *testing.T) *FertilizerRecommender {
	t.Helper()
	return NewFertilizerRecommender(emptyArtifactDir(t), identityTranslator{}, discardLogger())
}

func TestFertilizerFallbackNitrogenBoundaryIsStrict(t *testing.T) {
	r := newFallbackFertilizerRecommender(t)

	// N=29 trips the deficiency clause.
	got := r.Fallback(ports.FertilizerInput{Nitrogen: 29, Phosphorous: 30, Potassium: 40, Crop: "cotton", Lang: "en"})
	if got.Fertilizer != "Urea" {
		t.Fatalf("N=29 expected Urea, got %q", got.Fertilizer)
	}

	// N=30 falls through the first clause into the borderline branch; cotton
	// is not a refinement family, so the balanced default stands.
	got = r.Fallback(ports.FertilizerInput{Nitrogen: 30, Phosphorous: 30, Potassium: 40, Crop: "cotton", Lang: "en"})
	if got.Fertilizer != "Balanced NPK" {
		t.Fatalf("N=30 expected Balanced NPK, got %q", got.Fertilizer)
	}
}

func TestFertilizerFallbackBorderlineCropRefinement(t *testing.T) {
	r := newFallbackFertilizerRecommender(t)

	got := r.Fallback(ports.FertilizerInput{Nitrogen: 45, Phosphorous: 30, Potassium: 40, Crop: "rice", Lang: "en"})
	if got.Fertilizer != "Urea (High N Required)" {
		t.Fatalf("borderline rice expected high-N urea, got %q", got.Fertilizer)
	}

	got = r.Fallback(ports.FertilizerInput{Nitrogen: 45, Phosphorous: 30, Potassium: 40, Crop: "maize", Lang: "en"})
	if got.Fertilizer != "28-28-0 (Ammonium Phosphate)" {
		t.Fatalf("borderline maize expected 28-28-0, got %q", got.Fertilizer)
	}
}

func TestFertilizerFallbackDeficiencyPriority(t *testing.T) {
	r := newFallbackFertilizerRecommender(t)

	got := r.Fallback(ports.FertilizerInput{Nitrogen: 80, Phosphorous: 10, Potassium: 10, Crop: "cotton", Lang: "en"})
	if got.Fertilizer != "DAP" {
		t.Fatalf("low P takes priority over low K, got %q", got.Fertilizer)
	}

	got = r.Fallback(ports.FertilizerInput{Nitrogen: 80, Phosphorous: 30, Potassium: 10, Crop: "cotton", Lang: "en"})
	if got.Fertilizer != "MOP" {
		t.Fatalf("low K expected MOP, got %q", got.Fertilizer)
	}
}

func TestFertilizerFallbackConfidenceFixed(t *testing.T) {
	r := newFallbackFertilizerRecommender(t)
	got := r.Fallback(ports.FertilizerInput{Nitrogen: 10, Crop: "rice", Lang: "en"})
	if got.Confidence != 0.75 {
		t.Fatalf("fallback confidence = %v, want 0.75", got.Confidence)
	}
}

func TestFertilizerRecommendMissingModel(t *testing.T) {
	r := newFallbackFertilizerRecommender(t)
	_, err := r.Recommend(ports.FertilizerInput{Nitrogen: 10, Crop: "rice"})
	if !domain.IsKind(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestFertilizerRecommendMapsCropVocabulary(t *testing.T) {
	dir := artifactDir(t, map[string]any{
		"fertilizer_model.json":        constantForest([]string{"Urea", "DAP"}, []float64{7, 3}),
		"fertilizer_scaler.json":       identityScaler(8),
		"fertilizer_soil_encoder.json": map[string]any{"classes": []string{"Black", "Clayey", "Loamy", "Red", "Sandy"}},
		"fertilizer_crop_encoder.json": map[string]any{"classes": []string{"Cotton", "Maize", "Paddy", "Pulses", "Wheat"}},
	})
	r := NewFertilizerRecommender(dir, identityTranslator{}, discardLogger())

	got, err := r.Recommend(ports.FertilizerInput{
		Temperature: 26, Humidity: 52, Moisture: 38,
		SoilType: "Loamy", Crop: "chickpea",
		Nitrogen: 37, Potassium: 0, Phosphorous: 0,
		Lang: "en",
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.Fertilizer != "Urea" {
		t.Fatalf("expected Urea from argmax, got %q", got.Fertilizer)
	}
	if got.Confidence != 0.7 {
		t.Fatalf("confidence = %v, want raw class probability 0.7", got.Confidence)
	}
}

func TestFertilizerApplicationTips(t *testing.T) {
	tips := applicationTips("Urea (High N Required)", "rice")
	joined := strings.Join(tips, " ")
	if !strings.Contains(joined, "urea") && !strings.Contains(joined, "Apply urea") {
		t.Fatalf("expected urea tips, got %v", tips)
	}
	if !strings.Contains(joined, "standing water") {
		t.Fatalf("expected paddy tip for rice, got %v", tips)
	}

	generic := applicationTips("Gypsum", "cotton")
	if len(generic) != 2 {
		t.Fatalf("expected two generic tips, got %v", generic)
	}
}

func TestFertilizerReasoningThresholds(t *testing.T) {
	notes := fertilizerReasoning("cotton", 25, 15, 25, 30, "sandy")
	joined := strings.Join(notes, "|")
	for _, want := range []string{
		"potassium for fiber quality",
		"Low nitrogen level",
		"Low phosphorus level",
		"Low potassium level",
		"water-soluble",
		"Sandy soil",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("reasoning missing %q: %v", want, notes)
		}
	}

	// Mid-band nutrients emit no nutrient notes.
	quiet := fertilizerReasoning("", 40, 30, 40, 45, "")
	if len(quiet) != 1 || !strings.Contains(quiet[0], "soil nutrient analysis") {
		t.Fatalf("expected single generic note, got %v", quiet)
	}
}
