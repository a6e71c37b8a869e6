package app

import (
	"github.com/google/uuid"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// ProcessUpcomingEvents returns events dated today or later. Past events are
// dropped and the filtered view is persisted back to storage.
func (app *App) ProcessUpcomingEvents() ([]models.Event, error) {
	var upcoming []models.Event

	err := app.files.Update(func() error {
		all := []models.Event{}
		if err := app.files.Load(storage.KeyEvents, &all); err != nil {
			return err
		}

		today := todayString()
		upcoming = make([]models.Event, 0, len(all))
		for _, e := range all {
			if e.Date >= today {
				upcoming = append(upcoming, e)
			}
		}
		return app.files.Sync(storage.KeyEvents, upcoming)
	}, storage.KeyEvents)

	return upcoming, err
}

// ProcessAddEvent appends an event listing. A missing id is filled with a
// generated one; a missing title or date is rejected.
func (app *App) ProcessAddEvent(event models.Event) (models.Event, error) {
	if event.Title == "" || event.Date == "" {
		return event, ErrMissingFields
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	err := app.files.Update(func() error {
		all := []models.Event{}
		if err := app.files.Load(storage.KeyEvents, &all); err != nil {
			return err
		}
		all = append(all, event)
		return app.files.Sync(storage.KeyEvents, all)
	}, storage.KeyEvents)

	return event, err
}

// ProcessDeleteEvent removes an event by id. Idempotent.
func (app *App) ProcessDeleteEvent(id string) error {
	return app.files.Update(func() error {
		all := []models.Event{}
		if err := app.files.Load(storage.KeyEvents, &all); err != nil {
			return err
		}
		kept := all[:0]
		for _, e := range all {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return app.files.Sync(storage.KeyEvents, kept)
	}, storage.KeyEvents)
}
