package app

import (
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// ProcessSaveCart overwrites the cart wholesale with the supplied items and
// materializes one booked pickup request per item, carrying the listing's id
// forward. Saving the same cart twice produces duplicate requests; the
// original system behaves the same way and restaurants resolve duplicates by
// rejecting them.
func (app *App) ProcessSaveCart(items []models.FoodItem) error {
	if items == nil {
		return ErrInvalidPayload
	}

	return app.files.Update(func() error {
		if err := app.files.Sync(storage.KeyCart, items); err != nil {
			return err
		}

		requests := []models.Request{}
		if err := app.files.Load(storage.KeyRequests, &requests); err != nil {
			return err
		}
		for _, item := range items {
			requests = append(requests, models.Request{
				ID:              item.ID,
				Name:            item.Name,
				Quantity:        item.Quantity,
				EstimatedValue:  item.EstimatedValue,
				Restaurant:      item.Restaurant,
				ReservedAt:      item.ReservedAt,
				PickupStartTime: item.PickupStartTime,
				PickupEndTime:   item.PickupEndTime,
				Status:          models.RequestBooked,
			})
		}
		return app.files.Sync(storage.KeyRequests, requests)
	}, storage.KeyCart, storage.KeyRequests)
}

// ProcessClearCart empties the cart.
func (app *App) ProcessClearCart() error {
	return app.files.Update(func() error {
		return app.files.Sync(storage.KeyCart, []models.FoodItem{})
	}, storage.KeyCart)
}

// ProcessListRequests returns all pickup requests.
func (app *App) ProcessListRequests() ([]models.Request, error) {
	requests := []models.Request{}
	err := app.files.Update(func() error {
		return app.files.Load(storage.KeyRequests, &requests)
	}, storage.KeyRequests)
	return requests, err
}

// ProcessSetRequestStatus records the restaurant's decision on a pickup
// request. Only the booked -> accepted and booked -> rejected transitions
// exist; both outcomes are terminal.
func (app *App) ProcessSetRequestStatus(id, status string) error {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return ErrInvalidStatus
	}

	return app.files.Update(func() error {
		requests := []models.Request{}
		if err := app.files.Load(storage.KeyRequests, &requests); err != nil {
			return err
		}

		idx := -1
		for i := range requests {
			if requests[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}

		requests[idx].Status = status
		return app.files.Sync(storage.KeyRequests, requests)
	}, storage.KeyRequests)
}
