package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// freshnessWindow is how long a listing stays visible to NGOs after upload.
const freshnessWindow = 2 * time.Hour

// ProcessAddFood appends a new food listing in the available state.
func (app *App) ProcessAddFood(item models.FoodItem) (models.FoodItem, error) {
	if item.Name == "" || item.Quantity == "" {
		return item, ErrMissingFields
	}

	item.ID = uuid.New().String()
	item.Status = models.FoodAvailable
	item.CreatedAt = nowISO()
	item.ReservedAt = ""
	if item.DietaryTags == nil {
		item.DietaryTags = []string{}
	}

	err := app.files.Update(func() error {
		all := []models.FoodItem{}
		if err := app.files.Load(storage.KeyFoodItems, &all); err != nil {
			return err
		}
		all = append(all, item)
		return app.files.Sync(storage.KeyFoodItems, all)
	}, storage.KeyFoodItems)

	return item, err
}

// ProcessAvailableFood returns the fresh available listings: status available,
// created today, and no older than the freshness window. The pruned view is
// persisted back, so expired or claimed listings never resurface; the response
// always equals the stored state.
func (app *App) ProcessAvailableFood() ([]models.FoodItem, error) {
	var fresh []models.FoodItem

	err := app.files.Update(func() error {
		all := []models.FoodItem{}
		if err := app.files.Load(storage.KeyFoodItems, &all); err != nil {
			return err
		}

		now := time.Now().UTC()
		cutoff := now.Add(-freshnessWindow)
		today := todayString()

		fresh = make([]models.FoodItem, 0, len(all))
		for i := range all {
			if all[i].CreatedAt == "" {
				all[i].CreatedAt = now.Format(time.RFC3339)
			}
			createdAt, err := time.Parse(time.RFC3339, all[i].CreatedAt)
			if err != nil {
				continue
			}
			if all[i].Status == models.FoodAvailable &&
				!createdAt.Before(cutoff) &&
				createdAt.UTC().Format("2006-01-02") == today {
				fresh = append(fresh, all[i])
			}
		}

		return app.files.Sync(storage.KeyFoodItems, fresh)
	}, storage.KeyFoodItems)

	return fresh, err
}

// ProcessReserveFood transitions an available listing to reserved, stamping
// reservedAt, and appends the record to the reserved collection. Both files
// are written while both locks are held, so concurrent reservations cannot
// interleave between the two writes. A booked or already-reserved listing
// cannot be reserved again.
func (app *App) ProcessReserveFood(id string) error {
	return app.files.Update(func() error {
		all := []models.FoodItem{}
		if err := app.files.Load(storage.KeyFoodItems, &all); err != nil {
			return err
		}

		idx := -1
		for i := range all {
			if all[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		if all[idx].Status != models.FoodAvailable {
			return ErrNotReservable
		}

		all[idx].Status = models.FoodReserved
		all[idx].ReservedAt = nowISO()
		if err := app.files.Sync(storage.KeyFoodItems, all); err != nil {
			return err
		}

		reserved := []models.FoodItem{}
		if err := app.files.Load(storage.KeyReserved, &reserved); err != nil {
			return err
		}
		reserved = append(reserved, all[idx])
		return app.files.Sync(storage.KeyReserved, reserved)
	}, storage.KeyFoodItems, storage.KeyReserved)
}

// ProcessUnreserveFood reverses a reservation: the listing returns to the
// available state and its entry is dropped from the reserved collection. If
// the available-food pruning already removed the listing from the main file,
// the reserved copy is restored there. Booked listings stay booked.
func (app *App) ProcessUnreserveFood(id string) error {
	return app.files.Update(func() error {
		all := []models.FoodItem{}
		if err := app.files.Load(storage.KeyFoodItems, &all); err != nil {
			return err
		}
		reserved := []models.FoodItem{}
		if err := app.files.Load(storage.KeyReserved, &reserved); err != nil {
			return err
		}

		idx := -1
		for i := range all {
			if all[i].ID == id {
				idx = i
				break
			}
		}

		var restored *models.FoodItem
		keptReserved := make([]models.FoodItem, 0, len(reserved))
		for i := range reserved {
			if reserved[i].ID == id {
				entry := reserved[i]
				restored = &entry
				continue
			}
			keptReserved = append(keptReserved, reserved[i])
		}

		switch {
		case idx >= 0:
			if all[idx].Status == models.FoodBooked {
				return ErrNotReservable
			}
			all[idx].Status = models.FoodAvailable
			all[idx].ReservedAt = ""
		case restored != nil:
			item := *restored
			item.Status = models.FoodAvailable
			item.ReservedAt = ""
			all = append(all, item)
		default:
			return ErrNotFound
		}

		if err := app.files.Sync(storage.KeyFoodItems, all); err != nil {
			return err
		}
		return app.files.Sync(storage.KeyReserved, keptReserved)
	}, storage.KeyFoodItems, storage.KeyReserved)
}

// ProcessDeleteFood removes a listing by id. Idempotent.
func (app *App) ProcessDeleteFood(id string) error {
	return app.files.Update(func() error {
		all := []models.FoodItem{}
		if err := app.files.Load(storage.KeyFoodItems, &all); err != nil {
			return err
		}
		kept := all[:0]
		for _, item := range all {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return app.files.Sync(storage.KeyFoodItems, kept)
	}, storage.KeyFoodItems)
}

// ProcessDeleteReserved removes an entry from the reserved collection by id.
// Idempotent; the main listing is untouched.
func (app *App) ProcessDeleteReserved(id string) error {
	return app.files.Update(func() error {
		reserved := []models.FoodItem{}
		if err := app.files.Load(storage.KeyReserved, &reserved); err != nil {
			return err
		}
		kept := reserved[:0]
		for _, item := range reserved {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return app.files.Sync(storage.KeyReserved, kept)
	}, storage.KeyReserved)
}
