package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/auth"
	"github.com/taetu445/RescueBites/internal/pkg/logger"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const requestTimeout = 10 * time.Second

// handlers aggregates dependencies needed by HTTP handlers,
// including the application business logic and logger.
type handlers struct {
	app *app.App
	log *logger.Logger
}

// newHandlers initializes a new handlers instance with the provided app and logger dependencies.
func newHandlers(app *app.App, l *logger.Logger) *handlers {
	return &handlers{app: app, log: l}
}

// signupHandler creates an account with a hashed credential. A duplicate
// email yields 409.
func (handlers *handlers) signupHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var signupRequest models.SignupRequest
	if !readBody(res, req, &signupRequest) {
		return
	}

	var pgError *pgconn.PgError
	signupResponse, err := handlers.app.ProcessSignup(ctx, signupRequest)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeErrorResponse(res, "Missing fields", http.StatusBadRequest)
			return
		}
		if ok := errors.As(err, &pgError); ok && pgError.Code == pgerrcode.UniqueViolation {
			writeErrorResponse(res, "Email already in use", http.StatusConflict)
			return
		}
		writeErrorResponse(res, "Signup failed", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, signupResponse)
}

// loginHandler verifies the credential and issues a bearer token.
func (handlers *handlers) loginHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var loginRequest models.LoginRequest
	if !readBody(res, req, &loginRequest) {
		return
	}

	token, err := handlers.app.ProcessLogin(ctx, loginRequest)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeErrorResponse(res, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, models.AuthResponse{Token: token})
}

// userStatsHandler serves the public landing-page aggregates.
func (handlers *handlers) userStatsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := handlers.app.ProcessUserStats(ctx)
	if err != nil {
		writeErrorResponse(res, "Failed to load stats", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, stats)
}

// dashboardStatsHandler serves the NGO dashboard aggregates.
func (handlers *handlers) dashboardStatsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stats, err := handlers.app.ProcessDashboardStats(ctx)
	if err != nil {
		writeErrorResponse(res, "Could not load dashboard stats", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, stats)
}

// createPartnershipHandler records the authenticated NGO's partnership
// request toward a restaurant. A repeated pair yields 409.
func (handlers *handlers) createPartnershipHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	ngoID, ok := req.Context().Value(auth.ContextUserID).(int32)
	if !ok || ngoID == 0 {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	var payload models.PartnershipRequestPayload
	if !readBody(res, req, &payload) {
		return
	}

	var pgError *pgconn.PgError
	request, err := handlers.app.ProcessCreatePartnership(ctx, ngoID, payload.RestaurantID)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeErrorResponse(res, "Missing fields", http.StatusBadRequest)
			return
		}
		if ok := errors.As(err, &pgError); ok && pgError.Code == pgerrcode.UniqueViolation {
			writeErrorResponse(res, "Already requested.", http.StatusConflict)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, request)
}

// outgoingPartnershipsHandler lists the authenticated NGO's partnership requests.
func (handlers *handlers) outgoingPartnershipsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	ngoID, ok := req.Context().Value(auth.ContextUserID).(int32)
	if !ok || ngoID == 0 {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return
	}

	requests, err := handlers.app.ProcessOutgoingPartnerships(ctx, ngoID)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, requests)
}

// listRestaurantsHandler serves the restaurant directory.
func (handlers *handlers) listRestaurantsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	restaurants, err := handlers.app.ProcessListRestaurants(ctx)
	if err != nil {
		writeErrorResponse(res, "Unable to fetch restaurants", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, restaurants)
}

// readBody reads and unmarshals the request body into v, writing a 400
// response and returning false on failure.
func readBody(res http.ResponseWriter, req *http.Request, v any) bool {
	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	if err = json.Unmarshal(requestBody, v); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSONResponse(res http.ResponseWriter, v any) {
	result, err := json.Marshal(v)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	res.Write(result)
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Error: errorInfo})
}
