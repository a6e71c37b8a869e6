package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

func seedArchive(t *testing.T, app *App, days int) []models.ArchiveBucket {
	t.Helper()

	buckets := make([]models.ArchiveBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := time.Now().UTC().AddDate(0, 0, -i).Format("2006-01-02")
		buckets = append(buckets, models.ArchiveBucket{
			Date: date,
			Items: []models.Serving{
				{Name: "Dal", TotalPlates: 10, TotalEarning: 100.125},
				{Name: "Rice", TotalPlates: 5, TotalEarning: 50},
			},
		})
	}
	require.NoError(t, app.files.Sync(storage.KeyModelData, buckets))
	return buckets
}

func TestProcessSeriesWeekly(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	buckets := seedArchive(t, app, 10)

	series, err := app.ProcessSeries(PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, series, 7, "weekly view keeps only the last 7 buckets")

	assert.Equal(t, buckets[3].Date, series[0].Date)
	assert.Equal(t, 15, series[0].Actual)
	assert.Equal(t, 150.13, series[0].ActualEarning, "earnings rounded to two decimals")
}

func TestProcessSeriesMonthlyShortArchive(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	seedArchive(t, app, 3)

	series, err := app.ProcessSeries(PeriodMonthly)
	require.NoError(t, err)
	assert.Len(t, series, 3)
}

func TestProcessSeriesInvalidPeriod(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	_, err := app.ProcessSeries("yearly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestProcessPredictedSeries(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	seedArchive(t, app, 2)
	require.NoError(t, app.files.Sync(storage.KeyPredicted, map[string]any{"epsilon": 0.1}))

	predicted, err := app.ProcessPredictedSeries(PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, 0.1, predicted.Epsilon)
	require.Len(t, predicted.Series, 2)
	assert.Equal(t, 15, predicted.Series[0].Predicted)
	assert.Equal(t, 150.13, predicted.Series[0].PredictedEarning)
}

func TestProcessMetrics(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	require.NoError(t, app.files.Sync(storage.KeyMetricsWeekly, map[string]any{"accuracy": 0.9}))

	metrics, err := app.ProcessMetrics(PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, 0.9, metrics["accuracy"])

	_, err = app.ProcessMetrics("daily")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestProcessRecalibrateStampsSummary(t *testing.T) {
	app, tr, _ := newTestApp(t, nil)
	require.NoError(t, app.files.Sync(storage.KeyPredicted, map[string]any{"epsilon": 0.2}))

	summary, err := app.ProcessRecalibrate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, tr.runs)
	assert.Equal(t, 0.2, summary["epsilon"])
	assert.NotEmpty(t, summary["lastCalibrated"])

	stored := map[string]any{}
	require.NoError(t, app.files.Load(storage.KeyPredicted, &stored))
	assert.Equal(t, summary["lastCalibrated"], stored["lastCalibrated"])
}

func TestProcessRecalibrateTrainerFailure(t *testing.T) {
	app, tr, _ := newTestApp(t, nil)
	tr.err = assert.AnError

	_, err := app.ProcessRecalibrate(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProcessDishPredictions(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	require.NoError(t, app.files.Sync(storage.KeyPredicted, map[string]any{
		"dishes":   []any{"Dal", "Rice", "Paneer"},
		"q_values": []any{4.567, 3.2},
		"counts":   []any{12.0, 8.0, 3.0},
		"best":     "Dal",
	}))

	predictions, err := app.ProcessDishPredictions()
	require.NoError(t, err)
	require.Len(t, predictions, 3)

	assert.Equal(t, "Dal", predictions[0].DishName)
	assert.Equal(t, 4.57, predictions[0].QValue)
	assert.Equal(t, 12, predictions[0].Count)
	assert.True(t, predictions[0].IsBest)

	assert.False(t, predictions[1].IsBest)
	assert.Zero(t, predictions[2].QValue, "short q_values array degrades to zero")
}
