package domain

// Feature vector column order is fixed by the trained crop model:
// [N, P, K, temperature, humidity, pH, rainfall].
const (
	FeatureN = iota
	FeatureP
	FeatureK
	FeatureTemperature
	FeatureHumidity
	FeaturePH
	FeatureRainfall
	FeatureCount
)

type FeatureVector [FeatureCount]float64

// IsZero reports whether every field is zero, which the pipeline treats
// as a sensor failure rather than a valid sample.
func (f FeatureVector) IsZero() bool {
	for _, v := range f {
		if v != 0 {
			return false
		}
	}
	return true
}

func (f FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, f[:])
	return out
}

type CropCandidate struct {
	Crop           string   `json:"crop"`
	TranslatedCrop string   `json:"translated_crop"`
	Confidence     float64  `json:"confidence"`
	Reasoning      []string `json:"reasoning"`
}

type FertilizerResult struct {
	Fertilizer           string   `json:"fertilizer"`
	TranslatedFertilizer string   `json:"translated_fertilizer"`
	Confidence           float64  `json:"confidence"`
	Reasoning            []string `json:"reasoning"`
	ApplicationTips      []string `json:"application_tips"`
}

type YieldEstimate struct {
	PredictedYield float64 `json:"predicted_yield"`
	Unit           string  `json:"unit"`
	Season         string  `json:"season"`
}

// Recommendation bundles the per-candidate fan-out results.
type Recommendation struct {
	Crop       CropCandidate    `json:"crop"`
	Fertilizer FertilizerResult `json:"fertilizer"`
	Yield      YieldEstimate    `json:"yield"`
}

// RecommendRequest carries the raw caller input. Optional numeric fields are
// pointers so a missing field is distinguishable from an explicit zero.
type RecommendRequest struct {
	N           *float64 `json:"N"`
	P           *float64 `json:"P"`
	K           *float64 `json:"K"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PH          *float64 `json:"ph"`
	Rainfall    *float64 `json:"rainfall"`
	Moisture    *float64 `json:"moisture"`

	Location string `json:"location,omitempty"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	Season   string `json:"season,omitempty"`
	CropType string `json:"crop_type,omitempty"`
	SoilType string `json:"soil_type,omitempty"`
	Lang     string `json:"lang,omitempty"`
	DeviceID string `json:"device_id,omitempty"`

	FertilizerUsage *float64 `json:"fertilizer_usage,omitempty"`
	PesticideUsage  *float64 `json:"pesticide_usage,omitempty"`

	// UseSensor asks the resolver to prefill missing soil fields from the
	// latest telemetry aggregate before consulting weather.
	UseSensor bool `json:"use_sensor,omitempty"`
}

// ResolvedParams is the parameter set actually used for prediction after
// weather fill-in and defaulting; it is echoed back to the caller.
type ResolvedParams struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
	Moisture    float64 `json:"moisture"`

	Location        string  `json:"location"`
	State           string  `json:"state"`
	District        string  `json:"district"`
	Season          string  `json:"season"`
	CropType        string  `json:"crop_type,omitempty"`
	SoilType        string  `json:"soil_type"`
	Lang            string  `json:"lang"`
	DeviceID        string  `json:"device_id"`
	FertilizerUsage float64 `json:"fertilizer_usage"`
	PesticideUsage  float64 `json:"pesticide_usage"`
}

func (p ResolvedParams) Features() FeatureVector {
	return FeatureVector{p.N, p.P, p.K, p.Temperature, p.Humidity, p.PH, p.Rainfall}
}

type RecommendationSet struct {
	Status          string           `json:"status"`
	Recommendations []Recommendation `json:"recommendations"`
	UsedParams      ResolvedParams   `json:"used_params"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}
