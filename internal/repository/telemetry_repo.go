package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

// TelemetryRepository reads the precomputed generation views.
type TelemetryRepository struct {
	db *sql.DB
}

// NewTelemetryRepository returns a view accessor. A nil handle is legal and
// makes every method return ErrBackendUnavailable.
func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// DailyGenerationWh returns the raw watt-hour total aggregated for the given
// client and ISO date (YYYY-MM-DD) from view_geracao_diaria.
func (r *TelemetryRepository) DailyGenerationWh(ctx context.Context, clientID int64, date string) (float64, error) {
	if r.db == nil {
		return 0, ErrBackendUnavailable
	}

	const query = `
		SELECT total_enwh
		FROM view_geracao_diaria
		WHERE id_cliente = $1 AND data = $2
	`
	var totalWh float64
	if err := r.db.QueryRowContext(ctx, query, clientID, date).Scan(&totalWh); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoRows
		}
		return 0, err
	}
	return totalWh, nil
}

// PowerSeries returns the per-hour samples for the client from
// view_potencia_grafico, ascending by the underlying timestamp. The enwh
// column feeds the chart value.
func (r *TelemetryRepository) PowerSeries(ctx context.Context, clientID int64) ([]models.PowerSample, error) {
	if r.db == nil {
		return nil, ErrBackendUnavailable
	}

	const query = `
		SELECT hora, enwh, data_hora
		FROM view_potencia_grafico
		WHERE id_cliente = $1
		ORDER BY data_hora ASC
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.PowerSample
	for rows.Next() {
		var s models.PowerSample
		if err := rows.Scan(&s.Hour, &s.EnergyWh, &s.RecordedAt); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
