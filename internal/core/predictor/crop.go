package predictor

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"math/rand"
	"sort"
	"strings"

	"github.com/mittimitra/advisory/internal/core/domain"
	"github.com/mittimitra/advisory/internal/core/ports"
	"github.com/mittimitra/advisory/internal/infrastructure/artifacts"
	"github.com/mittimitra/advisory/internal/ml"
)

// Crop category whitelists. The two sets are disjoint; the model may know
// more classes, but category filtering suppresses everything outside the
// requested set without renormalizing the surviving probabilities.
var (
	agriCrops = []string{
		"rice", "maize", "chickpea", "kidneybeans", "pigeonpeas",
		"mothbeans", "mungbean", "blackgram", "lentil", "cotton", "jute",
	}
	hortiCrops = []string{
		"pomegranate", "banana", "mango", "grapes", "watermelon",
		"muskmelon", "apple", "orange", "papaya", "coconut", "coffee",
	}
)

const minCropConfidence = 0.001

type CropPredictor struct {
	forest     *ml.Forest
	scaler     *ml.Scaler
	translator ports.Translator
	logger     *slog.Logger
	modelErr   error
}

// NewCropPredictor loads the crop classifier artifacts. A load failure does
// not fail construction: the predictor reports ErrModelUnavailable from
// Predict and serves the deterministic fallback via Fallback instead.
func NewCropPredictor(dir *artifacts.Dir, translator ports.Translator, logger *slog.Logger) *CropPredictor {
	p := &CropPredictor{translator: translator, logger: logger}

	var forest ml.Forest
	if err := dir.Load("crop_model.json", &forest); err != nil {
		p.modelErr = err
		logger.Warn("crop model artifact unavailable, fallback path active", "error", err)
		return p
	}
	var scaler ml.Scaler
	if err := dir.Load("crop_scaler.json", &scaler); err != nil {
		p.modelErr = err
		logger.Warn("crop scaler artifact unavailable, fallback path active", "error", err)
		return p
	}
	p.forest = &forest
	p.scaler = &scaler
	return p
}

func (p *CropPredictor) Predict(features domain.FeatureVector, topN int, lang, cropType string) ([]domain.CropCandidate, error) {
	// All-zero input means the sensors failed; never reaches the model.
	if features.IsZero() {
		p.logger.Warn("all sensor inputs are zero, skipping crop prediction")
		return []domain.CropCandidate{}, nil
	}
	if p.modelErr != nil {
		return nil, p.modelErr
	}

	scaled, err := p.scaler.Transform(features.Slice())
	if err != nil {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "scale crop features", err)
	}
	probs, err := p.forest.PredictProba(scaled)
	if err != nil {
		return nil, domain.WrapError(domain.ErrModelUnavailable, "crop inference", err)
	}

	if allowed := categorySet(cropType); allowed != nil {
		for i, class := range p.forest.Classes {
			if !allowed[strings.ToLower(class)] {
				probs[i] = 0
			}
		}
	}

	// Rank by probability descending; stable sort keeps original class
	// index order on ties.
	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return probs[indices[a]] > probs[indices[b]]
	})
	if topN < len(indices) {
		indices = indices[:topN]
	}

	results := make([]domain.CropCandidate, 0, len(indices))
	for _, idx := range indices {
		if probs[idx] <= minCropConfidence {
			continue
		}
		crop := p.forest.Classes[idx]
		results = append(results, domain.CropCandidate{
			Crop:           crop,
			TranslatedCrop: p.translator.Translate(crop, lang),
			Confidence:     round2(probs[idx]),
			Reasoning:      p.reasoning(crop, features, lang),
		})
	}
	return results, nil
}

// Fallback is the deterministic mock path: the same features always yield
// the same candidates with the same confidences. The seed derivation (hash
// of the printed feature vector, per-crop sub-seed from seed plus the sum of
// character codes) is a compatibility contract shared with the training
// side; do not change it.
func (p *CropPredictor) Fallback(features domain.FeatureVector, topN int, lang, cropType string) []domain.CropCandidate {
	var pool []string
	switch strings.ToLower(cropType) {
	case "agriculture":
		pool = agriCrops
	case "horticulture":
		pool = hortiCrops
	default:
		pool = append(append([]string{}, agriCrops...), hortiCrops...)
	}

	seed := featureSeed(features)
	rng := rand.New(rand.NewSource(int64(seed)))

	rainfall := features[domain.FeatureRainfall]
	candidates := pool
	switch {
	case rainfall > 200:
		candidates = intersect(pool, []string{"rice", "jute", "coconut", "papaya"})
	case rainfall < 50:
		candidates = intersect(pool, []string{"mothbeans", "chickpea", "lentil", "muskmelon"})
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	shuffled := append([]string{}, candidates...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if topN < len(shuffled) {
		shuffled = shuffled[:topN]
	}

	results := make([]domain.CropCandidate, 0, len(shuffled))
	for _, crop := range shuffled {
		cropSeed := seed + charCodeSum(crop)
		cropRng := rand.New(rand.NewSource(int64(cropSeed)))
		confidence := 0.65 + cropRng.Float64()*0.20

		results = append(results, domain.CropCandidate{
			Crop:           crop,
			TranslatedCrop: p.translator.Translate(crop, lang),
			Confidence:     round2(confidence),
			Reasoning:      p.reasoning(crop, features, lang),
		})
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Confidence > results[b].Confidence
	})
	return results
}

// reasoning derives short explainability notes from the raw features.
func (p *CropPredictor) reasoning(crop string, features domain.FeatureVector, lang string) []string {
	rain := features[domain.FeatureRainfall]
	temp := features[domain.FeatureTemperature]
	ph := features[domain.FeaturePH]
	lower := strings.ToLower(crop)

	var notes []string
	if rain > 150 && inSet(lower, "rice", "jute", "sugarcane", "coffee", "coconut", "banana", "papaya") {
		notes = append(notes, "High rainfall is suitable for this crop.")
	} else if rain < 50 && inSet(lower, "chickpea", "mothbeans", "lentil", "blackgram", "mungbean") {
		notes = append(notes, "Suitable for low rainfall conditions.")
	}
	if temp > 30 && !inSet(lower, "wheat", "pea") {
		notes = append(notes, "Thrives in warm temperatures.")
	}
	if ph >= 5.5 && ph <= 7.0 {
		notes = append(notes, "Soil pH is optimal.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Matches your soil nutrient profile best.")
	}

	for i, n := range notes {
		notes[i] = p.translator.Translate(n, lang)
	}
	return notes
}

func categorySet(cropType string) map[string]bool {
	var list []string
	switch strings.ToLower(cropType) {
	case "agriculture":
		list = agriCrops
	case "horticulture":
		list = hortiCrops
	default:
		return nil
	}
	set := make(map[string]bool, len(list))
	for _, c := range list {
		set[c] = true
	}
	return set
}

// featureSeed hashes the printed feature vector into a 32-bit seed.
func featureSeed(features domain.FeatureVector) uint64 {
	repr := fmt.Sprintf("%v", features.Slice())
	sum := sha256.Sum256([]byte(repr))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, big.NewInt(1<<32)).Uint64()
}

func charCodeSum(s string) uint64 {
	var sum uint64
	for _, r := range s {
		sum += uint64(r)
	}
	return sum
}

func intersect(pool, wanted []string) []string {
	set := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		set[w] = true
	}
	var out []string
	for _, c := range pool {
		if set[c] {
			out = append(out, c)
		}
	}
	return out
}

func inSet(v string, set ...string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
