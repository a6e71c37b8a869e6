// Package models defines the data structures used throughout the application.
// It includes the file-backed resource records (servings, food items, requests,
// events, feedback) as well as request and response payloads for authentication,
// statistics, and the derived time-series views.
package models

import "time"

// SignupRequest represents the account-creation payload.
// RestaurantName and OrganizationName are role-dependent optional fields.
type SignupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	RestaurantName   string `json:"restaurantName,omitempty"`
	OrganizationName string `json:"organizationName,omitempty"`
	GstNumber        string `json:"gstNumber,omitempty"`
	AadharNumber     string `json:"aadharNumber,omitempty"`
}

// SignupResponse is returned on successful account creation.
type SignupResponse struct {
	ID    int32  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest represents the credential-verification payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed bearer token issued on login.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the uniform error payload for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the uniform confirmation payload for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// User represents an account row in the relational store.
type User struct {
	ID               int32
	Email            string
	PasswordHash     string
	Role             string
	RestaurantName   string
	OrganizationName string
	GstNumber        string
	AadharNumber     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Account roles.
const (
	RoleNGO        = "NGO"
	RoleRestaurant = "RESTAURANT"
)

// Restaurant is the directory entry served to NGOs. Fields beyond the
// account columns are placeholders the frontend expects.
type Restaurant struct {
	ID             int32   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	GstNumber      string  `json:"gstNumber"`
	JoinedDate     string  `json:"joinedDate"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Cuisine        string  `json:"cuisine"`
	Status         string  `json:"status"`
	LastPickup     string  `json:"lastPickup"`
	TotalDonations int     `json:"totalDonations"`
	TotalPickups   int     `json:"totalPickups"`
	Rating         float64 `json:"rating"`
	Reliability    float64 `json:"reliability"`
}

// PartnershipRequest links an NGO to a restaurant it wants to partner with.
type PartnershipRequest struct {
	ID           int32       `json:"id"`
	NgoID        int32       `json:"ngoId"`
	RestaurantID int32       `json:"restaurantId"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
}

// Serving is one dish record in today's servings.
type Serving struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	Name                 string  `json:"name"`
	CostPerPlate         float64 `json:"costPerPlate"`
	TotalIngredientsCost float64 `json:"totalIngredientsCost"`
	TotalPlates          int     `json:"totalPlates"`
	PlatesWasted         int     `json:"platesWasted"`
	TotalEarning         float64 `json:"totalEarning"`
}

// ArchiveBucket holds one day's servings in the model-training archive.
type ArchiveBucket struct {
	Date  string    `json:"date"`
	Items []Serving `json:"items"`
}

// Event is a restaurant-published event listing.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

// Food item lifecycle states.
const (
	FoodAvailable = "available"
	FoodReserved  = "reserved"
	FoodBooked    = "booked"
)

// FoodItem is a surplus-food listing uploaded by a restaurant.
// Quantity and EstimatedValue are free-form strings as entered in the
// upload form; aggregations parse their leading numeric part.
type FoodItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Quantity        string   `json:"quantity"`
	PickupStartTime string   `json:"pickupStartTime"`
	PickupEndTime   string   `json:"pickupEndTime"`
	EstimatedValue  string   `json:"estimatedValue"`
	DietaryTags     []string `json:"dietaryTags"`
	Image           string   `json:"image,omitempty"`
	Restaurant      string   `json:"restaurant,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"createdAt"`
	ReservedAt      string   `json:"reservedAt,omitempty"`
}

// Request lifecycle states.
const (
	RequestBooked   = "booked"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Request is a pickup request materialized from a saved cart item.
type Request struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	EstimatedValue  string `json:"estimatedValue"`
	Restaurant      string `json:"restaurant"`
	ReservedAt      string `json:"reservedAt,omitempty"`
	PickupStartTime string `json:"pickupStartTime"`
	PickupEndTime   string `json:"pickupEndTime"`
	Status          string `json:"status"`
}

// Feedback is an NGO-submitted review record. Append-only.
type Feedback struct {
	ID               string `json:"id"`
	OrganizationName string `json:"organizationName"`
	ReviewFor        string `json:"reviewFor"`
	MenuItem         string `json:"menuItem,omitempty"`
	Rating           int    `json:"rating"`
	Content          string `json:"content"`
	SubmittedAt      string `json:"submittedAt"`
}

// Review is the public, display-oriented projection of a Feedback record.
type Review struct {
	ID           string `json:"id"`
	ReviewerName string `json:"reviewerName"`
	ReviewerType string `json:"reviewerType"`
	TargetName   string `json:"targetName"`
	TargetType   string `json:"targetType"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
	FoodItem     string `json:"foodItem"`
	Helpful      int    `json:"helpful"`
	Verified     bool   `json:"verified"`
}

// SeriesPoint is one day of the actual time series derived from the archive.
type SeriesPoint struct {
	Date          string  `json:"date"`
	Actual        int     `json:"actual"`
	ActualEarning float64 `json:"actualEarning"`
}

// PredictedPoint mirrors SeriesPoint under the predicted labels.
type PredictedPoint struct {
	Date             string  `json:"date"`
	Predicted        int     `json:"predicted"`
	PredictedEarning float64 `json:"predictedEarning"`
}

// PredictedSeriesResponse is the payload of the predicted time-series view.
type PredictedSeriesResponse struct {
	Epsilon float64          `json:"epsilon"`
	Series  []PredictedPoint `json:"series"`
}

// DishPrediction is one row of the per-dish view over the trainer summary.
type DishPrediction struct {
	DishName string  `json:"dishName"`
	QValue   float64 `json:"qValue"`
	Count    int     `json:"count"`
	IsBest   bool    `json:"isBest"`
}

// UserStats aggregates account counts with donation totals for the
// public landing page.
type UserStats struct {
	Ngos         int `json:"ngos"`
	Restaurants  int `json:"restaurants"`
	MealsDonated int `json:"mealsDonated"`
	FoodSaved    int `json:"foodSaved"`
}

// DashboardStats aggregates the NGO dashboard headline numbers.
type DashboardStats struct {
	ActivePartners    int `json:"activePartners"`
	UpcomingPickups   int `json:"upcomingPickups"`
	RequestsFulfilled int `json:"requestsFulfilled"`
	TotalFoodSaved    int `json:"totalFoodSaved"`
}

// SaveCartRequest is the payload of the cart-save operation.
type SaveCartRequest struct {
	Items []FoodItem `json:"items"`
}

// ReserveRequest identifies the food item to reserve or unreserve.
type ReserveRequest struct {
	ID string `json:"id"`
}

// StatusUpdateRequest carries the new status for a pickup request.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PartnershipRequestPayload identifies the restaurant an NGO wants to
// partner with.
type PartnershipRequestPayload struct {
	RestaurantID int32 `json:"restaurantId"`
}
