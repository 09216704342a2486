package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
	"github.com/Luiz-campos3/Onway-Monitor/internal/repository"
)

const isoDateLayout = "2006-01-02"

// TelemetryReader is the storage contract for the generation views.
type TelemetryReader interface {
	DailyGenerationWh(ctx context.Context, clientID int64, date string) (float64, error)
	PowerSeries(ctx context.Context, clientID int64) ([]models.PowerSample, error)
}

// Summary is the dashboard payload for one client. MonthlyKWh stays nil
// until the monthly aggregate view exists.
type Summary struct {
	TodayKWh   float64             `json:"generation_today_kwh"`
	MonthlyKWh *float64            `json:"generation_month_kwh"`
	Series     []models.PowerPoint `json:"power_series"`
}

// DashboardService serves the per-client telemetry reads. Every read
// degrades to its zero/empty fallback instead of returning an error; failure
// details only reach the log.
type DashboardService struct {
	telemetry TelemetryReader
	now       func() time.Time
	logger    *zap.Logger
}

// NewDashboardService builds a DashboardService.
func NewDashboardService(telemetry TelemetryReader, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		telemetry: telemetry,
		now:       time.Now,
		logger:    logger,
	}
}

// DailyGeneration returns today's cumulative generation in kWh, rounded to
// two decimals. Missing configuration, query failures and absent rows all
// yield 0.
func (s *DashboardService) DailyGeneration(ctx context.Context, clientID int64) float64 {
	date := s.now().Format(isoDateLayout)
	totalWh, err := s.telemetry.DailyGenerationWh(ctx, clientID, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoRows):
			// No generation recorded yet today.
		case errors.Is(err, repository.ErrBackendUnavailable):
			s.logger.Warn("daily generation skipped, backend unavailable", zap.Int64("client_id", clientID))
		default:
			s.logger.Error("daily generation query failed", zap.Int64("client_id", clientID), zap.Error(err))
		}
		return 0
	}
	if totalWh < 0 {
		totalWh = 0
	}
	return roundKWh(totalWh / 1000)
}

// PowerSeries returns the ordered per-hour chart points for the client.
// Every failure yields an empty, non-nil sequence.
func (s *DashboardService) PowerSeries(ctx context.Context, clientID int64) []models.PowerPoint {
	samples, err := s.telemetry.PowerSeries(ctx, clientID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBackendUnavailable):
			s.logger.Warn("power series skipped, backend unavailable", zap.Int64("client_id", clientID))
		default:
			s.logger.Error("power series query failed", zap.Int64("client_id", clientID), zap.Error(err))
		}
		return []models.PowerPoint{}
	}

	points := make([]models.PowerPoint, 0, len(samples))
	for _, sample := range samples {
		value := sample.EnergyWh
		if value < 0 {
			value = 0
		}
		points = append(points, models.PowerPoint{
			Hour:  sample.Hour,
			Value: value,
		})
	}
	return points
}

// LoadSummary fetches the daily total and the power series sequentially,
// mirroring the dashboard load routine.
func (s *DashboardService) LoadSummary(ctx context.Context, clientID int64) Summary {
	return Summary{
		TodayKWh: s.DailyGeneration(ctx, clientID),
		Series:   s.PowerSeries(ctx, clientID),
	}
}

func roundKWh(v float64) float64 {
	return math.Round(v*100) / 100
}
