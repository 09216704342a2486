package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
	"github.com/Luiz-campos3/Onway-Monitor/internal/repository"
)

type fakeTelemetry struct {
	totalWh    float64
	totalErr   error
	samples    []models.PowerSample
	samplesErr error

	lastDate string
	calls    int
}

func (f *fakeTelemetry) DailyGenerationWh(_ context.Context, _ int64, date string) (float64, error) {
	f.lastDate = date
	f.calls++
	if f.totalErr != nil {
		return 0, f.totalErr
	}
	return f.totalWh, nil
}

func (f *fakeTelemetry) PowerSeries(_ context.Context, _ int64) ([]models.PowerSample, error) {
	if f.samplesErr != nil {
		return nil, f.samplesErr
	}
	return f.samples, nil
}

func TestDashboardDailyGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("converts Wh to kWh rounded to two decimals", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalWh: 12345}
		svc := NewDashboardService(telemetry, zap.NewNop())

		assert.Equal(t, 12.35, svc.DailyGeneration(ctx, 1))
	})

	t.Run("filters by the current server date", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalWh: 1000}
		svc := NewDashboardService(telemetry, zap.NewNop())
		svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

		svc.DailyGeneration(ctx, 1)
		assert.Equal(t, "2024-03-15", telemetry.lastDate)
	})

	t.Run("no row yields zero", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalErr: repository.ErrNoRows}
		svc := NewDashboardService(telemetry, zap.NewNop())
		assert.Zero(t, svc.DailyGeneration(ctx, 1))
	})

	t.Run("backend unavailable yields zero", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalErr: repository.ErrBackendUnavailable}
		svc := NewDashboardService(telemetry, zap.NewNop())
		assert.Zero(t, svc.DailyGeneration(ctx, 1))
	})

	t.Run("query failure yields zero", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalErr: assert.AnError}
		svc := NewDashboardService(telemetry, zap.NewNop())
		assert.Zero(t, svc.DailyGeneration(ctx, 1))
	})

	t.Run("repeated reads of unchanged data are identical", func(t *testing.T) {
		telemetry := &fakeTelemetry{totalWh: 9876.5}
		svc := NewDashboardService(telemetry, zap.NewNop())

		first := svc.DailyGeneration(ctx, 1)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, svc.DailyGeneration(ctx, 1))
		}
		assert.Equal(t, 6, telemetry.calls, "every read hits the backend, nothing is cached")
	})
}

func TestDashboardPowerSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("maps samples to chart points in order", func(t *testing.T) {
		base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
		telemetry := &fakeTelemetry{samples: []models.PowerSample{
			{Hour: "08", EnergyWh: 120, RecordedAt: base},
			{Hour: "09", EnergyWh: 340, RecordedAt: base.Add(time.Hour)},
			{Hour: "10", EnergyWh: 510, RecordedAt: base.Add(2 * time.Hour)},
		}}
		svc := NewDashboardService(telemetry, zap.NewNop())

		points := svc.PowerSeries(ctx, 1)
		require.Len(t, points, 3)
		assert.Equal(t, models.PowerPoint{Hour: "08", Value: 120}, points[0])
		assert.Equal(t, models.PowerPoint{Hour: "10", Value: 510}, points[2])
	})

	t.Run("no rows yields empty non-nil sequence", func(t *testing.T) {
		svc := NewDashboardService(&fakeTelemetry{}, zap.NewNop())
		points := svc.PowerSeries(ctx, 1)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})

	t.Run("failures yield empty sequence", func(t *testing.T) {
		for _, err := range []error{repository.ErrBackendUnavailable, assert.AnError} {
			svc := NewDashboardService(&fakeTelemetry{samplesErr: err}, zap.NewNop())
			points := svc.PowerSeries(ctx, 1)
			assert.NotNil(t, points)
			assert.Empty(t, points)
		}
	})
}

func TestDashboardLoadSummary(t *testing.T) {
	telemetry := &fakeTelemetry{
		totalWh: 2500,
		samples: []models.PowerSample{{Hour: "12", EnergyWh: 900}},
	}
	svc := NewDashboardService(telemetry, zap.NewNop())

	summary := svc.LoadSummary(context.Background(), 1)
	assert.Equal(t, 2.5, summary.TodayKWh)
	assert.Nil(t, summary.MonthlyKWh, "monthly total has no backing view yet")
	require.Len(t, summary.Series, 1)
	assert.Equal(t, 900.0, summary.Series[0].Value)
}
