package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mittimitra/advisory/internal/core/domain"
)

// PredictionRepository persists the top crop recommendation per request and
// serves the history/statistics read paths.
type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026030102)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS crop_predictions (
	id TEXT PRIMARY KEY,
	device_id TEXT NOT NULL,
	city TEXT,
	nitrogen DOUBLE PRECISION,
	phosphorus DOUBLE PRECISION,
	potassium DOUBLE PRECISION,
	soil_ph DOUBLE PRECISION,
	temperature DOUBLE PRECISION,
	humidity DOUBLE PRECISION,
	rainfall DOUBLE PRECISION,
	predicted_crop TEXT NOT NULL,
	confidence DOUBLE PRECISION NOT NULL,
	translated_crop TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_crop_predictions_device ON crop_predictions(device_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_crop_predictions_created_at ON crop_predictions(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *PredictionRepository) StoreCropPrediction(ctx context.Context, p domain.StoredPrediction) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO crop_predictions (
	id, device_id, city, nitrogen, phosphorus, potassium, soil_ph, temperature, humidity, rainfall,
	predicted_crop, confidence, translated_crop, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`,
		p.ID, p.DeviceID, p.City, p.Nitrogen, p.Phosphorus, p.Potassium, p.PH,
		p.Temperature, p.Humidity, p.Rainfall, p.PredictedCrop, p.Confidence,
		p.TranslatedCrop, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert crop prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) RecentPredictions(ctx context.Context, deviceID string, limit int) ([]domain.StoredPrediction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, device_id, city, nitrogen, phosphorus, potassium, soil_ph, temperature, humidity, rainfall,
	predicted_crop, confidence, translated_crop, created_at
FROM crop_predictions
WHERE ($1 = '' OR device_id = $1)
ORDER BY created_at DESC
LIMIT $2
`, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent predictions: %w", err)
	}
	defer rows.Close()

	var predictions []domain.StoredPrediction
	for rows.Next() {
		var p domain.StoredPrediction
		if err := rows.Scan(
			&p.ID, &p.DeviceID, &p.City, &p.Nitrogen, &p.Phosphorus, &p.Potassium, &p.PH,
			&p.Temperature, &p.Humidity, &p.Rainfall, &p.PredictedCrop, &p.Confidence,
			&p.TranslatedCrop, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}
	return predictions, nil
}

// CropStatistics counts predictions per crop over a trailing window of days.
func (r *PredictionRepository) CropStatistics(ctx context.Context, days int) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT predicted_crop, COUNT(*)
FROM crop_predictions
WHERE created_at >= NOW() - $1 * INTERVAL '1 day'
GROUP BY predicted_crop
ORDER BY COUNT(*) DESC
`, days)
	if err != nil {
		return nil, fmt.Errorf("query crop statistics: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var crop string
		var count int
		if err := rows.Scan(&crop, &count); err != nil {
			return nil, fmt.Errorf("scan statistics row: %w", err)
		}
		stats[crop] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statistics: %w", err)
	}
	return stats, nil
}
