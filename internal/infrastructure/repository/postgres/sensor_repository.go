package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mittimitra/advisory/internal/core/domain"
)

// SensorRepository persists device telemetry samples.
type SensorRepository struct {
	db *sql.DB
}

func NewSensorRepository(db *sql.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

func (r *SensorRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026030101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS sensor_readings (
	id TEXT PRIMARY KEY,
	device_id TEXT NOT NULL,
	temperature DOUBLE PRECISION,
	humidity DOUBLE PRECISION,
	moisture DOUBLE PRECISION,
	soil_ph DOUBLE PRECISION,
	nitrogen DOUBLE PRECISION,
	phosphorus DOUBLE PRECISION,
	potassium DOUBLE PRECISION,
	rainfall DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sensor_readings_created_at ON sensor_readings(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_sensor_readings_device ON sensor_readings(device_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *SensorRepository) Insert(ctx context.Context, reading domain.SensorReading) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sensor_readings (
	id, device_id, temperature, humidity, moisture, soil_ph, nitrogen, phosphorus, potassium, rainfall, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`,
		reading.ID, reading.DeviceID, reading.Temperature, reading.Humidity, reading.Moisture,
		reading.SoilPH, reading.Nitrogen, reading.Phosphorus, reading.Potassium, reading.Rainfall,
		reading.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sensor reading: %w", err)
	}
	return nil
}

func (r *SensorRepository) Latest(ctx context.Context) (*domain.SensorReading, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, device_id, temperature, humidity, moisture, soil_ph, nitrogen, phosphorus, potassium, rainfall, created_at
FROM sensor_readings
ORDER BY created_at DESC
LIMIT 1
`)

	var reading domain.SensorReading
	err := row.Scan(
		&reading.ID, &reading.DeviceID, &reading.Temperature, &reading.Humidity, &reading.Moisture,
		&reading.SoilPH, &reading.Nitrogen, &reading.Phosphorus, &reading.Potassium, &reading.Rainfall,
		&reading.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sensor reading: %w", err)
	}
	return &reading, nil
}
