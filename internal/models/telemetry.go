package models

import "time"

// PowerSample is one per-hour row of the view_potencia_grafico view.
type PowerSample struct {
	Hour       string    `db:"hora" json:"hour"`
	EnergyWh   float64   `db:"enwh" json:"energy_wh"`
	RecordedAt time.Time `db:"data_hora" json:"recorded_at"`
}

// PowerPoint is a chart-ready (hour, value) pair derived from a PowerSample.
type PowerPoint struct {
	Hour  string  `json:"hour"`
	Value float64 `json:"value"`
}
