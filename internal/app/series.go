package app

import (
	"context"
	"sort"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// Periods accepted by the time-series views.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

func periodDays(period string) (int, error) {
	switch period {
	case PeriodWeekly:
		return 7, nil
	case PeriodMonthly:
		return 30, nil
	default:
		return 0, ErrInvalidPeriod
	}
}

// ProcessSeries computes the actual time series over the model-training
// archive: one point per day-bucket, summing plates and earnings across that
// day's servings, for the last 7 or 30 days.
func (app *App) ProcessSeries(period string) ([]models.SeriesPoint, error) {
	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}

	buckets := []models.ArchiveBucket{}
	if err := app.files.Update(func() error {
		return app.files.Load(storage.KeyModelData, &buckets)
	}, storage.KeyModelData); err != nil {
		return nil, err
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	if len(buckets) > days {
		buckets = buckets[len(buckets)-days:]
	}

	series := make([]models.SeriesPoint, 0, len(buckets))
	for _, bucket := range buckets {
		point := models.SeriesPoint{Date: bucket.Date}
		for _, item := range bucket.Items {
			point.Actual += item.TotalPlates
			point.ActualEarning += item.TotalEarning
		}
		point.ActualEarning = round2(point.ActualEarning)
		series = append(series, point)
	}
	return series, nil
}

// ProcessPredictedSeries relabels the actual series under the predicted keys
// and attaches the exploration epsilon from the trainer summary. The real
// per-dish forecast lives in the summary artifact; this view exists so the
// dashboard can overlay both lines on one axis.
func (app *App) ProcessPredictedSeries(period string) (*models.PredictedSeriesResponse, error) {
	actual, err := app.ProcessSeries(period)
	if err != nil {
		return nil, err
	}

	summary, err := app.ProcessModelSummary()
	if err != nil {
		return nil, err
	}

	response := &models.PredictedSeriesResponse{
		Epsilon: asFloat(summary["epsilon"]),
		Series:  make([]models.PredictedPoint, 0, len(actual)),
	}
	for _, point := range actual {
		response.Series = append(response.Series, models.PredictedPoint{
			Date:             point.Date,
			Predicted:        point.Actual,
			PredictedEarning: point.ActualEarning,
		})
	}
	return response, nil
}

// ProcessModelSummary returns the externally produced prediction summary.
func (app *App) ProcessModelSummary() (map[string]any, error) {
	return app.readSummary(storage.KeyPredicted)
}

// ProcessWeeklyForecast returns the externally produced weekly forecast artifact.
func (app *App) ProcessWeeklyForecast() (map[string]any, error) {
	return app.readSummary(storage.KeyPredictedWeekly)
}

// ProcessMetrics returns the weekly or monthly metrics artifact.
func (app *App) ProcessMetrics(period string) (map[string]any, error) {
	switch period {
	case PeriodWeekly:
		return app.readSummary(storage.KeyMetricsWeekly)
	case PeriodMonthly:
		return app.readSummary(storage.KeyMetricsMonthly)
	default:
		return nil, ErrInvalidPeriod
	}
}

func (app *App) readSummary(key storage.Key) (map[string]any, error) {
	summary := map[string]any{}
	err := app.files.Update(func() error {
		return app.files.Load(key, &summary)
	}, key)
	return summary, err
}

// ProcessRecalibrate triggers the external trainer, waits for it to finish
// within its deadline, then re-reads the freshly written summary and stamps
// lastCalibrated into it. Trainer errors (including the retryable timeout)
// propagate unchanged.
func (app *App) ProcessRecalibrate(ctx context.Context) (map[string]any, error) {
	if err := app.trainer.Run(ctx); err != nil {
		return nil, err
	}

	summary := map[string]any{}
	err := app.files.Update(func() error {
		if err := app.files.Load(storage.KeyPredicted, &summary); err != nil {
			return err
		}
		summary["lastCalibrated"] = nowISO()
		return app.files.Sync(storage.KeyPredicted, summary)
	}, storage.KeyPredicted)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ProcessDishPredictions flattens the bandit summary arrays into one row per
// dish, flagging the trainer's best pick. Missing or short arrays degrade to
// zero values; the artifact is external and its shape is not guaranteed.
func (app *App) ProcessDishPredictions() ([]models.DishPrediction, error) {
	summary, err := app.ProcessModelSummary()
	if err != nil {
		return nil, err
	}

	dishes := asSlice(summary["dishes"])
	qValues := asSlice(summary["q_values"])
	counts := asSlice(summary["counts"])
	best, _ := summary["best"].(string)

	predictions := make([]models.DishPrediction, 0, len(dishes))
	for i, raw := range dishes {
		dish, _ := raw.(string)
		prediction := models.DishPrediction{DishName: dish, IsBest: dish != "" && dish == best}
		if i < len(qValues) {
			prediction.QValue = round2(asFloat(qValues[i]))
		}
		if i < len(counts) {
			prediction.Count = int(asFloat(counts[i]))
		}
		predictions = append(predictions, prediction)
	}
	return predictions, nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
