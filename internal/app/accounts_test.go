package app

import (
	"context"
	"database/sql"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/auth"
	"github.com/taetu445/RescueBites/internal/pkg/security"
	"github.com/taetu445/RescueBites/internal/storage/mocks"
)

func TestProcessSignup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockStorage(ctrl)
	app, _, _ := newTestApp(t, db)

	db.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) (*models.User, error) {
			assert.NoError(t, security.CheckPassword(user.PasswordHash, "secret"))
			user.ID = 7
			return user, nil
		})

	response, err := app.ProcessSignup(context.Background(), models.SignupRequest{
		Email:          "owner@spicevilla.in",
		Password:       "secret",
		Role:           models.RoleRestaurant,
		RestaurantName: "Spice Villa",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(7), response.ID)
	assert.Equal(t, "owner@spicevilla.in", response.Email)
	assert.Equal(t, models.RoleRestaurant, response.Role)
}

func TestProcessSignupMissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, _ := newTestApp(t, mocks.NewMockStorage(ctrl))

	_, err := app.ProcessSignup(context.Background(), models.SignupRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestProcessLogin(t *testing.T) {
	auth.SetSecret("test-secret")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockStorage(ctrl)
	app, _, _ := newTestApp(t, db)

	stored := &models.User{
		ID:           3,
		Email:        "ngo@helpinghands.org",
		PasswordHash: security.HashPassword("secret"),
		Role:         models.RoleNGO,
	}
	db.EXPECT().GetUserByEmail(gomock.Any(), "ngo@helpinghands.org").Return(stored, nil).Times(2)

	token, err := app.ProcessLogin(context.Background(), models.LoginRequest{
		Email:    "ngo@helpinghands.org",
		Password: "secret",
	})
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(3), claims.UserID)
	assert.Equal(t, models.RoleNGO, claims.Role)

	_, err = app.ProcessLogin(context.Background(), models.LoginRequest{
		Email:    "ngo@helpinghands.org",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProcessLoginUnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockStorage(ctrl)
	app, _, _ := newTestApp(t, db)

	db.EXPECT().GetUserByEmail(gomock.Any(), "nobody@example.com").Return(nil, sql.ErrNoRows)

	_, err := app.ProcessLogin(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProcessUserStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockStorage(ctrl)
	app, _, _ := newTestApp(t, db)

	db.EXPECT().CountUsersByRole(gomock.Any(), models.RoleNGO).Return(2, nil)
	db.EXPECT().CountUsersByRole(gomock.Any(), models.RoleRestaurant).Return(3, nil)

	require.NoError(t, app.ProcessSaveCart([]models.FoodItem{
		{ID: "f1", Name: "Dal", Quantity: "5 kg"},
		{ID: "f2", Name: "Rice", Quantity: "12 kg"},
		{ID: "f3", Name: "Paneer", Quantity: "2 kg"},
	}))
	require.NoError(t, app.ProcessSetRequestStatus("f1", models.RequestAccepted))
	require.NoError(t, app.ProcessSetRequestStatus("f2", models.RequestAccepted))
	require.NoError(t, app.ProcessSetRequestStatus("f3", models.RequestRejected))

	stats, err := app.ProcessUserStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Ngos)
	assert.Equal(t, 3, stats.Restaurants)
	assert.Equal(t, 2, stats.MealsDonated)
	assert.Equal(t, 17, stats.FoodSaved, "quantities parse their leading digits")
}

func TestProcessDashboardStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mocks.NewMockStorage(ctrl)
	app, _, _ := newTestApp(t, db)

	db.EXPECT().CountUsersByRole(gomock.Any(), models.RoleRestaurant).Return(4, nil)

	require.NoError(t, app.ProcessSaveCart([]models.FoodItem{
		{ID: "f1", Name: "Dal", Quantity: "5 kg"},
		{ID: "f2", Name: "Rice", Quantity: "3 kg"},
	}))
	require.NoError(t, app.ProcessSetRequestStatus("f1", models.RequestAccepted))

	stats, err := app.ProcessDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.ActivePartners)
	assert.Equal(t, 1, stats.RequestsFulfilled)
	assert.Equal(t, 5, stats.TotalFoodSaved)
	assert.Zero(t, stats.UpcomingPickups)
}

func TestProcessCreatePartnershipMissingRestaurant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, _ := newTestApp(t, mocks.NewMockStorage(ctrl))

	_, err := app.ProcessCreatePartnership(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrMissingFields)
}
