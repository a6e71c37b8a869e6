package app

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/auth"
	"github.com/taetu445/RescueBites/internal/pkg/security"
)

// ProcessSignup creates an account with a hashed credential. Duplicate emails
// surface as a unique-violation error for the handler to translate into 409.
func (app *App) ProcessSignup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingFields
	}

	user := &models.User{
		Email:            req.Email,
		PasswordHash:     security.HashPassword(req.Password),
		Role:             req.Role,
		RestaurantName:   req.RestaurantName,
		OrganizationName: req.OrganizationName,
		GstNumber:        req.GstNumber,
		AadharNumber:     req.AadharNumber,
	}

	user, err := app.db.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return &models.SignupResponse{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// ProcessLogin verifies the credential and issues a signed, time-limited
// bearer token carrying the account id and role. An unknown email and a wrong
// password are indistinguishable to the caller.
func (app *App) ProcessLogin(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := app.db.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := security.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, user.Role)
}

// ProcessUserStats combines role counts from the account store with the
// accepted-request aggregates: each accepted request is one donated meal, and
// the quantities of accepted requests sum to the food saved.
func (app *App) ProcessUserStats(ctx context.Context) (*models.UserStats, error) {
	ngos, err := app.db.CountUsersByRole(ctx, models.RoleNGO)
	if err != nil {
		return nil, err
	}
	restaurants, err := app.db.CountUsersByRole(ctx, models.RoleRestaurant)
	if err != nil {
		return nil, err
	}

	requests, err := app.ProcessListRequests()
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{Ngos: ngos, Restaurants: restaurants}
	for _, r := range requests {
		if r.Status == models.RequestAccepted {
			stats.MealsDonated++
			stats.FoodSaved += parseLeadingInt(r.Quantity)
		}
	}
	return stats, nil
}

// ProcessDashboardStats computes the NGO dashboard headline numbers from the
// account store and the pickup-request collection.
func (app *App) ProcessDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	partners, err := app.db.CountUsersByRole(ctx, models.RoleRestaurant)
	if err != nil {
		return nil, err
	}

	requests, err := app.ProcessListRequests()
	if err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{ActivePartners: partners}
	for _, r := range requests {
		switch r.Status {
		case "pending":
			stats.UpcomingPickups++
		case models.RequestAccepted:
			stats.RequestsFulfilled++
			stats.TotalFoodSaved += parseLeadingInt(r.Quantity)
		}
	}
	return stats, nil
}

// ProcessCreatePartnership records an NGO's partnership request toward a
// restaurant. Duplicate pairs surface as a unique violation.
func (app *App) ProcessCreatePartnership(ctx context.Context, ngoID, restaurantID int32) (*models.PartnershipRequest, error) {
	if restaurantID == 0 {
		return nil, ErrMissingFields
	}
	return app.db.CreatePartnershipRequest(ctx, ngoID, restaurantID)
}

// ProcessOutgoingPartnerships lists the NGO's partnership requests with the
// target restaurants joined in.
func (app *App) ProcessOutgoingPartnerships(ctx context.Context, ngoID int32) ([]models.PartnershipRequest, error) {
	return app.db.ListOutgoingPartnershipRequests(ctx, ngoID)
}

// ProcessListRestaurants returns the restaurant directory.
func (app *App) ProcessListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return app.db.ListRestaurants(ctx)
}
