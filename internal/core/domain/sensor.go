package domain

import "time"

// SensorReading is one telemetry sample, either pushed by a field device or
// pulled from the ThingSpeak channel by the poller.
type SensorReading struct {
	ID          string    `json:"id,omitempty"`
	DeviceID    string    `json:"device_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Moisture    float64   `json:"moisture"`
	SoilPH      float64   `json:"ph"`
	Nitrogen    float64   `json:"nitrogen"`
	Phosphorus  float64   `json:"phosphorus"`
	Potassium   float64   `json:"potassium"`
	Rainfall    float64   `json:"rainfall"`
	CreatedAt   time.Time `json:"timestamp"`
}

// TelemetryFeed is one upstream channel entry as served by the provider.
// Field order follows the channel configuration:
// field1..field7 = temperature, humidity, moisture, pH, N, P, K.
type TelemetryFeed struct {
	EntryID     int64
	CreatedAt   time.Time
	Temperature float64
	Humidity    float64
	Moisture    float64
	SoilPH      float64
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
}

// TelemetryAggregate holds column-wise means over the last N feed entries.
type TelemetryAggregate struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Moisture    float64 `json:"moisture"`
	PH          float64 `json:"ph"`
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Rainfall    float64 `json:"rainfall"`
}

// StoredPrediction mirrors one row of the crop_predictions table.
type StoredPrediction struct {
	ID             string    `json:"id"`
	DeviceID       string    `json:"device_id"`
	City           string    `json:"city,omitempty"`
	Nitrogen       float64   `json:"nitrogen"`
	Phosphorus     float64   `json:"phosphorus"`
	Potassium      float64   `json:"potassium"`
	PH             float64   `json:"ph"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	Rainfall       float64   `json:"rainfall"`
	PredictedCrop  string    `json:"predicted_crop"`
	Confidence     float64   `json:"confidence"`
	TranslatedCrop string    `json:"translated_crop,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
