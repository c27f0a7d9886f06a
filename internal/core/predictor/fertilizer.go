package predictor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/ml"
)

// cropToFertilizerVocab maps predicted crop names onto the fertilizer
// dataset's coarser crop vocabulary. Many-to-one: the pulses family folds
// into "Pulses", jute shares the fiber-crop profile of Cotton. Unmapped
// crops default to "Wheat".
var cropToFertilizerVocab = map[string]string{
	"rice":      "Paddy",
	"paddy":     "Paddy",
	"maize":     "Maize",
	"wheat":     "Wheat",
	"cotton":    "Cotton",
	"sugarcane": "Sugarcane",
	"barley":    "Barley",
	"millet":    "Millets",
	"millets":   "Millets",
	"pulses":    "Pulses",
	"tobacco":   "Tobacco",
	"groundnut": "Ground Nuts",
	"oilseeds":  "Oil seeds",
	"chickpea":  "Pulses",
	"kidneybeans": "Pulses",
	"pigeonpeas":  "Pulses",
	"mothbeans":   "Pulses",
	"mungbean":    "Pulses",
	"blackgram":   "Pulses",
	"lentil":      "Pulses",
	"jute":        "Cotton",
}

const fallbackFertilizerConfidence = 0.75

type FertilizerRecommender struct {
	forest      *ml.Forest
	scaler      *ml.Scaler
	soilEncoder *ml.LabelEncoder
	cropEncoder *ml.LabelEncoder
	translator  ports.Translator
	logger      *slog.Logger
	modelErr    error
}

func NewFertilizerRecommender(dir *artifacts.Dir, translator ports.Translator, logger *slog.Logger) *FertilizerRecommender {
	r := &FertilizerRecommender{translator: translator, logger: logger}

	load := func(name string, out any) bool {
		if err := dir.Load(name, out); err != nil {
			r.modelErr = err
			logger.Warn("fertilizer artifact unavailable, fallback path active", "artifact", name, "error", err)
			return false
		}
		return true
	}

	var forest ml.Forest
	var scaler ml.Scaler
	var soilEnc, cropEnc ml.LabelEncoder
	if !load("fertilizer_model.json", &forest) ||
		!load("fertilizer_scaler.json", &scaler) ||
		!load("fertilizer_soil_encoder.json", &soilEnc) ||
		!load("fertilizer_crop_encoder.json", &cropEnc) {
		return r
	}
	r.forest = &forest
	r.scaler = &scaler
	r.soilEncoder = &soilEnc
	r.cropEncoder = &cropEnc
	return r
}

func (r *FertilizerRecommender) Recommend(in ports.FertilizerInput) (domain.FertilizerResult, error) {
	if r.modelErr != nil {
		return domain.FertilizerResult{}, r.modelErr
	}

	soilCode, ok := r.soilEncoder.Encode(in.SoilType)
	if !ok {
		soilCode = 0
	}

	mapped, ok := cropToFertilizerVocab[strings.ToLower(in.Crop)]
	if !ok {
		mapped = "Wheat"
	}
	cropCode, ok := r.cropEncoder.Encode(mapped)
	if !ok {
		cropCode, _ = r.cropEncoder.Encode("Wheat")
	}

	// Trained column order: temp, humidity, moisture, soil, crop, N, K, P.
	features := []float64{
		in.Temperature, in.Humidity, in.Moisture,
		float64(soilCode), float64(cropCode),
		in.Nitrogen, in.Potassium, in.Phosphorous,
	}
	scaled, err := r.scaler.Transform(features)
	if err != nil {
		return domain.FertilizerResult{}, domain.WrapError(domain.ErrModelUnavailable, "scale fertilizer features", err)
	}
	probs, err := r.forest.PredictProba(scaled)
	if err != nil {
		return domain.FertilizerResult{}, domain.WrapError(domain.ErrModelUnavailable, "fertilizer inference", err)
	}

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	fertilizer := r.forest.Classes[best]

	reasoning := fertilizerReasoning(in.Crop, in.Nitrogen, in.Phosphorous, in.Potassium, in.Moisture, in.SoilType)
	tips := applicationTips(fertilizer, in.Crop)

	return r.localize(domain.FertilizerResult{
		Fertilizer:      fertilizer,
		Confidence:      round2(probs[best]),
		Reasoning:       reasoning,
		ApplicationTips: tips,
	}, in.Lang), nil
}

// Fallback decides from nutrient thresholds alone; confidence is fixed.
// Reasoning and tips reuse the model path's generators with neutral
// environment values so the explanation stays nutrient-driven.
func (r *FertilizerRecommender) Fallback(in ports.FertilizerInput) domain.FertilizerResult {
	fertilizer := "Balanced NPK"
	switch {
	case in.Nitrogen < 30:
		fertilizer = "Urea"
	case in.Phosphorous < 20:
		fertilizer = "DAP"
	case in.Potassium < 20:
		fertilizer = "MOP"
	}

	// Borderline nitrogen: crop family refines the pick.
	if in.Nitrogen >= 30 && in.Nitrogen <= 60 {
		switch strings.ToLower(in.Crop) {
		case "rice", "paddy", "sugarcane":
			fertilizer = "Urea (High N Required)"
		case "wheat", "maize", "millets":
			fertilizer = "28-28-0 (Ammonium Phosphate)"
		}
	}

	reasoning := fertilizerReasoning(in.Crop, in.Nitrogen, in.Phosphorous, in.Potassium, 45, "")
	tips := applicationTips(fertilizer, in.Crop)

	return r.localize(domain.FertilizerResult{
		Fertilizer:      fertilizer,
		Confidence:      fallbackFertilizerConfidence,
		Reasoning:       reasoning,
		ApplicationTips: tips,
	}, in.Lang)
}

func (r *FertilizerRecommender) localize(result domain.FertilizerResult, lang string) domain.FertilizerResult {
	result.TranslatedFertilizer = r.translator.Translate(result.Fertilizer, lang)
	for i, s := range result.Reasoning {
		result.Reasoning[i] = r.translator.Translate(s, lang)
	}
	for i, s := range result.ApplicationTips {
		result.ApplicationTips[i] = r.translator.Translate(s, lang)
	}
	return result
}

// fertilizerReasoning is independent of the model output: notes derive
// purely from thresholds over the inputs.
func fertilizerReasoning(crop string, n, p, k, moisture float64, soilType string) []string {
	var notes []string

	if crop != "" {
		switch lower := strings.ToLower(crop); {
		case lower == "rice" || lower == "paddy":
			notes = append(notes, fmt.Sprintf("%s requires high nitrogen for vegetative growth and tillering", crop))
		case lower == "wheat" || lower == "maize":
			notes = append(notes, fmt.Sprintf("%s benefits from balanced NPK nutrition for grain development", crop))
		case lower == "cotton":
			notes = append(notes, fmt.Sprintf("%s requires adequate potassium for fiber quality and disease resistance", crop))
		case lower == "pulses" || lower == "legumes":
			notes = append(notes, fmt.Sprintf("%s requires phosphorus for root development and nitrogen fixation", crop))
		default:
			notes = append(notes, fmt.Sprintf("Fertilizer optimized for %s nutrient requirements", crop))
		}
	}

	if n < 30 {
		notes = append(notes, fmt.Sprintf("Low nitrogen level (%g mg/kg) detected - nitrogen-rich fertilizer recommended", n))
	} else if n > 50 {
		notes = append(notes, fmt.Sprintf("Adequate nitrogen level (%g mg/kg) - balanced fertilizer recommended", n))
	}

	if p < 20 {
		notes = append(notes, fmt.Sprintf("Low phosphorus level (%g mg/kg) - phosphorus supplementation needed", p))
	} else if p > 40 {
		notes = append(notes, fmt.Sprintf("Sufficient phosphorus level (%g mg/kg)", p))
	}

	if k < 30 {
		notes = append(notes, fmt.Sprintf("Low potassium level (%g mg/kg) - potassium supplementation recommended", k))
	} else if k > 50 {
		notes = append(notes, fmt.Sprintf("Adequate potassium level (%g mg/kg)", k))
	}

	if moisture < 35 {
		notes = append(notes, "Low soil moisture - consider water-soluble fertilizers for better uptake")
	} else if moisture > 60 {
		notes = append(notes, "High soil moisture - slow-release fertilizers recommended")
	}

	switch strings.ToLower(soilType) {
	case "sandy":
		notes = append(notes, "Sandy soil - frequent, smaller fertilizer applications recommended")
	case "clayey":
		notes = append(notes, "Clayey soil - ensure good drainage for optimal nutrient uptake")
	}

	if len(notes) == 0 {
		notes = append(notes, "Fertilizer recommendation based on soil nutrient analysis and crop requirements")
	}
	return notes
}

func applicationTips(fertilizer, crop string) []string {
	var tips []string
	name := strings.ToLower(fertilizer)

	switch {
	case strings.Contains(name, "urea"):
		tips = append(tips,
			"Apply urea when soil is moist, preferably just before irrigation.",
			"Incorporate into soil within 24 hours to minimize nitrogen loss to atmosphere.")
	case strings.Contains(name, "dap"):
		tips = append(tips,
			"Apply DAP at the time of sowing for better root development.",
			"Avoid contact between DAP and seeds; keep a 2-3 inch distance.")
	case strings.Contains(name, "mop"):
		tips = append(tips,
			"MOP (Potash) should be applied in split doses for better efficacy.",
			"Effective for improving fruit quality and stress tolerance.")
	case strings.Contains(name, "npk"):
		tips = append(tips,
			"NPK fertilizers work best when applied in the root zone.",
			"Standard application: half during sowing, remaining after 30-40 days.")
	}

	if lower := strings.ToLower(crop); lower == "rice" || lower == "paddy" {
		tips = append(tips, "For Paddy, apply fertilizers in standing water (shallow depth).")
	}

	if len(tips) == 0 {
		tips = append(tips,
			"Apply during early morning or late evening.",
			"Ensure uniform distribution across the field.")
	}
	return tips
}
