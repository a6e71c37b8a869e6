package app

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// ProcessListServings returns today's serving records. Records from earlier
// days are filtered out and the filtered view is persisted back, so the
// response and the stored state are always identical. The public copy of
// today's servings is refreshed here rather than through Sync.
func (app *App) ProcessListServings() ([]models.Serving, error) {
	var filtered []models.Serving

	err := app.files.Update(func() error {
		all := []models.Serving{}
		if err := app.files.Load(storage.KeyToday, &all); err != nil {
			return err
		}

		today := todayString()
		filtered = make([]models.Serving, 0, len(all))
		for _, s := range all {
			if s.Date != today {
				continue
			}
			if s.ID == "" {
				s.ID = uuid.New().String()
			}
			filtered = append(filtered, s)
		}

		if err := app.files.WritePrivate(storage.KeyToday, filtered); err != nil {
			return err
		}
		return app.files.WritePublic(storage.KeyToday, filtered)
	}, storage.KeyToday)

	return filtered, err
}

// ProcessAddServing appends a serving stamped with a generated id and today's
// date. When the client did not compute the earning, it is derived from the
// per-plate economics: (costPerPlate - ingredientsCost/plates) * plates sold.
func (app *App) ProcessAddServing(serving models.Serving) (models.Serving, error) {
	serving.ID = uuid.New().String()
	serving.Date = todayString()
	if serving.TotalEarning == 0 && serving.TotalPlates > 0 {
		perPlate := serving.CostPerPlate - serving.TotalIngredientsCost/float64(serving.TotalPlates)
		serving.TotalEarning = round2(perPlate * float64(serving.TotalPlates-serving.PlatesWasted))
	}

	err := app.files.Update(func() error {
		all := []models.Serving{}
		if err := app.files.Load(storage.KeyToday, &all); err != nil {
			return err
		}
		all = append(all, serving)
		return app.files.Sync(storage.KeyToday, all)
	}, storage.KeyToday)

	return serving, err
}

// ProcessDeleteServing removes the serving with the given id. Deleting an
// unknown id is a silent success.
func (app *App) ProcessDeleteServing(id string) error {
	return app.files.Update(func() error {
		all := []models.Serving{}
		if err := app.files.Load(storage.KeyToday, &all); err != nil {
			return err
		}
		kept := all[:0]
		for _, s := range all {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		return app.files.Sync(storage.KeyToday, kept)
	}, storage.KeyToday)
}

// ProcessArchive folds today's servings into the model-training archive.
// The bucket for today's date is replaced if present and appended otherwise,
// so repeated archives within one day never duplicate the bucket. Buckets are
// kept sorted by date ascending.
func (app *App) ProcessArchive() error {
	return app.files.Update(func() error {
		return app.archiveLocked()
	}, storage.KeyToday, storage.KeyModelData)
}

// archiveLocked performs the archive fold. Callers must hold the today and
// modelData locks.
func (app *App) archiveLocked() error {
	today := []models.Serving{}
	if err := app.files.Load(storage.KeyToday, &today); err != nil {
		return err
	}

	buckets := []models.ArchiveBucket{}
	if err := app.files.Load(storage.KeyModelData, &buckets); err != nil {
		return err
	}

	stamp := todayString()
	replaced := false
	for i := range buckets {
		if buckets[i].Date == stamp {
			buckets[i].Items = today
			replaced = true
			break
		}
	}
	if !replaced {
		buckets = append(buckets, models.ArchiveBucket{Date: stamp, Items: today})
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return app.files.Sync(storage.KeyModelData, buckets)
}

// ProcessResetToday clears today's servings in both the private file and the
// public mirror.
func (app *App) ProcessResetToday() error {
	return app.files.Update(func() error {
		return app.resetTodayLocked()
	}, storage.KeyToday)
}

func (app *App) resetTodayLocked() error {
	empty := []models.Serving{}
	if err := app.files.WritePrivate(storage.KeyToday, empty); err != nil {
		return err
	}
	return app.files.WritePublic(storage.KeyToday, empty)
}

// RunNightly performs the unattended daily maintenance: archive today's
// servings, reset the day, then retrain the model. Trainer failures are
// logged but do not undo the archive.
func (app *App) RunNightly(ctx context.Context) error {
	err := app.files.Update(func() error {
		if err := app.archiveLocked(); err != nil {
			return err
		}
		return app.resetTodayLocked()
	}, storage.KeyToday, storage.KeyModelData)
	if err != nil {
		return err
	}

	if err := app.trainer.Run(ctx); err != nil {
		app.log.Sugar().Errorf("Nightly model retraining failed: %s", err)
		return err
	}
	return nil
}
