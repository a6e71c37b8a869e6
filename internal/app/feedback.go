package app

import (
	"github.com/google/uuid"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/storage"
)

// ProcessAddFeedback appends an NGO review to the append-only feedback log,
// stamping id and submission time. Feedback is the one mutable resource that
// is never mirrored publicly; its public projection is the reviews view.
func (app *App) ProcessAddFeedback(fb models.Feedback) (models.Feedback, error) {
	fb.ID = uuid.New().String()
	fb.SubmittedAt = nowISO()

	err := app.files.Update(func() error {
		all := []models.Feedback{}
		if err := app.files.Load(storage.KeyFeedback, &all); err != nil {
			return err
		}
		all = append(all, fb)
		return app.files.WritePrivate(storage.KeyFeedback, all)
	}, storage.KeyFeedback)

	return fb, err
}

// ProcessListFeedback returns the raw feedback log.
func (app *App) ProcessListFeedback() ([]models.Feedback, error) {
	all := []models.Feedback{}
	err := app.files.Update(func() error {
		return app.files.Load(storage.KeyFeedback, &all)
	}, storage.KeyFeedback)
	return all, err
}

// ProcessReviews projects the feedback log into the public review shape.
// Reviewer and target types are fixed: every review in this marketplace is an
// NGO reviewing a restaurant.
func (app *App) ProcessReviews() ([]models.Review, error) {
	feedback, err := app.ProcessListFeedback()
	if err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(feedback))
	for _, fb := range feedback {
		reviews = append(reviews, models.Review{
			ID:           fb.ID,
			ReviewerName: fb.OrganizationName,
			ReviewerType: "ngo",
			TargetName:   fb.ReviewFor,
			TargetType:   "restaurant",
			Rating:       fb.Rating,
			Comment:      fb.Content,
			Date:         fb.SubmittedAt,
			FoodItem:     fb.MenuItem,
			Helpful:      0,
			Verified:     true,
		})
	}
	return reviews, nil
}
