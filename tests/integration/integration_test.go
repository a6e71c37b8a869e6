package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/chat"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/logger"
	"github.com/taetu445/RescueBites/internal/service"
	"github.com/taetu445/RescueBites/internal/storage"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
)

var testDatabaseURI, testServerPort string

func init() {
	if err := godotenv.Load("../integration/.env"); err != nil {
		log.Println("No .env file found, using default values")
	}

	testDatabaseURI = os.Getenv("TEST_DATABASE_URI")
	testServerPort = os.Getenv("TEST_SERVER_PORT")
}

type noopTrainer struct{}

func (noopTrainer) Run(_ context.Context) error { return nil }

type noopCompleter struct{}

func (noopCompleter) Complete(_ context.Context, _ []chat.Message) (string, error) {
	return "ok", nil
}

type IntegrationTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
	db     *storage.PostgreSQL
}

func (s *IntegrationTestSuite) SetupSuite() {
	if testDatabaseURI == "" {
		s.T().Skip("TEST_DATABASE_URI is not set")
	}

	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger("info"); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	s.db, err = storage.NewPostgreSQL(testDatabaseURI, l)
	s.Require().NoError(err, "Error connecting to test database")

	files, err := storage.NewFileStore(
		filepath.Join(s.T().TempDir(), "data"),
		filepath.Join(s.T().TempDir(), "public"),
		l,
	)
	s.Require().NoError(err, "Error creating file store")

	appInstance := app.NewApp(s.db, files, noopTrainer{}, noopCompleter{}, l)
	serviceInstance := service.NewService(appInstance, "localhost:"+testServerPort, l)

	s.server = httptest.NewServer(serviceInstance.NewRouter())
	s.client = s.server.Client()
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func (s *IntegrationTestSuite) signupAndLogin(email, role string) string {
	signupReq := models.SignupRequest{
		Email:    email,
		Password: "password",
		Role:     role,
	}
	reqBody, err := json.Marshal(signupReq)
	s.Require().NoError(err, "Error marshaling signup request")

	resp, err := s.client.Post(s.server.URL+"/api/v1/auth/signup", "application/json", bytes.NewBuffer(reqBody))
	s.Require().NoError(err, "Error sending signup request")
	resp.Body.Close()
	s.Require().Contains([]int{http.StatusOK, http.StatusConflict}, resp.StatusCode,
		"Expected 200 for a new account or 409 for a re-run")

	loginReq := models.LoginRequest{Email: email, Password: "password"}
	reqBody, err = json.Marshal(loginReq)
	s.Require().NoError(err, "Error marshaling login request")

	resp, err = s.client.Post(s.server.URL+"/api/v1/auth/login", "application/json", bytes.NewBuffer(reqBody))
	s.Require().NoError(err, "Error sending login request")
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for login")

	var authResp models.AuthResponse
	err = json.NewDecoder(resp.Body).Decode(&authResp)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding login response")
	s.Require().NotEmpty(authResp.Token, "Token should not be empty")
	return authResp.Token
}

func (s *IntegrationTestSuite) doJSON(method, path, token string, payload any) *http.Response {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err, "Error marshaling request payload")
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err, "Error creating request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Error executing request")
	return resp
}

func (s *IntegrationTestSuite) TestDonationFlow() {
	restaurantToken := s.signupAndLogin(
		fmt.Sprintf("restaurant-%d@integration.test", time.Now().UnixNano()), models.RoleRestaurant)
	ngoToken := s.signupAndLogin(
		fmt.Sprintf("ngo-%d@integration.test", time.Now().UnixNano()), models.RoleNGO)

	// Restaurant uploads surplus food.
	resp := s.doJSON(http.MethodPost, "/api/food", restaurantToken, models.FoodItem{
		Name:       "Veg Pulao",
		Quantity:   "10 kg",
		Restaurant: "Spice Villa",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for food upload")

	var added struct {
		Message string          `json:"message"`
		Item    models.FoodItem `json:"item"`
	}
	err := json.NewDecoder(resp.Body).Decode(&added)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding food upload response")
	s.Require().NotEmpty(added.Item.ID, "Food item id should not be empty")

	// NGO sees the listing.
	resp = s.doJSON(http.MethodGet, "/api/available-food", ngoToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for available food")

	var available []models.FoodItem
	err = json.NewDecoder(resp.Body).Decode(&available)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding available food")
	s.Require().NotEmpty(available, "Fresh listing should be visible")

	// NGO reserves it and checks out.
	resp = s.doJSON(http.MethodPost, "/api/reserve-food", ngoToken, models.ReserveRequest{ID: added.Item.ID})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for reservation")
	resp.Body.Close()

	resp = s.doJSON(http.MethodPost, "/api/save-cart", ngoToken, models.SaveCartRequest{
		Items: []models.FoodItem{added.Item},
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for cart save")
	resp.Body.Close()

	// Restaurant accepts the pickup request.
	resp = s.doJSON(http.MethodPost, "/api/requests/"+added.Item.ID+"/status", restaurantToken,
		models.StatusUpdateRequest{Status: models.RequestAccepted})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for status update")
	resp.Body.Close()

	// The accepted donation shows up in the public stats.
	resp = s.doJSON(http.MethodGet, "/api/stats/users", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for user stats")

	var stats models.UserStats
	err = json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding user stats")

	s.T().Logf("Stats after donation: %+v", stats)
	s.Require().GreaterOrEqual(stats.MealsDonated, 1, "Accepted request should count as a donated meal")
	s.Require().GreaterOrEqual(stats.FoodSaved, 10, "Accepted quantity should count toward food saved")
}

func (s *IntegrationTestSuite) TestServingArchiveFlow() {
	restaurantToken := s.signupAndLogin(
		fmt.Sprintf("kitchen-%d@integration.test", time.Now().UnixNano()), models.RoleRestaurant)

	resp := s.doJSON(http.MethodPost, "/api/servings", restaurantToken, models.Serving{
		Name:                 "Dal Makhani",
		CostPerPlate:         5,
		TotalIngredientsCost: 30,
		TotalPlates:          20,
		PlatesWasted:         2,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for serving upload")
	resp.Body.Close()

	resp = s.doJSON(http.MethodGet, "/api/servings", restaurantToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for serving list")

	var servings []models.Serving
	err := json.NewDecoder(resp.Body).Decode(&servings)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding servings")
	s.Require().NotEmpty(servings, "Today's serving should be listed")

	resp = s.doJSON(http.MethodPost, "/api/archive", restaurantToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for archive")
	resp.Body.Close()

	resp = s.doJSON(http.MethodGet, "/api/dataformodel/weekly", restaurantToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for weekly series")

	var series []models.SeriesPoint
	err = json.NewDecoder(resp.Body).Decode(&series)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding weekly series")
	s.Require().NotEmpty(series, "Archived day should appear in the series")

	s.T().Logf("Weekly series: %+v", series)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
