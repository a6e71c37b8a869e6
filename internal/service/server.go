// Package service contains the HTTP surface of the marketplace API. It wires
// the chi router, translates between HTTP payloads and the app layer, and
// serves the public data mirror as static assets.
package service

import (
	"net/http"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/pkg/auth"
	"github.com/taetu445/RescueBites/internal/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Service encapsulates the HTTP server configuration, including the application's
// business logic, HTTP handlers, the server's run address, and a logger.
type Service struct {
	handlers   *handlers
	app        *app.App
	runAddress string
	log        *logger.Logger
}

// NewService creates and initializes a new Service instance.
func NewService(app *app.App, runAddress string, l *logger.Logger) *Service {
	handlers := newHandlers(app, l)
	return &Service{handlers: handlers, app: app, runAddress: runAddress, log: l}
}

// NewRouter sets up and returns a new chi.Router instance with the necessary
// middleware and routes. Logging middleware applies globally; JWT authentication
// middleware guards the protected routes.
func (service *Service) NewRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(service.log.WithLogging())

	router.Route("/api", func(r chi.Router) {
		r.Post("/v1/auth/signup", service.handlers.signupHandler)
		r.Post("/v1/auth/login", service.handlers.loginHandler)

		r.Get("/stats/users", service.handlers.userStatsHandler)
		r.Get("/stats/dashboard", service.handlers.dashboardStatsHandler)

		r.Post("/feedback", service.handlers.addFeedbackHandler)
		r.Get("/feedback", service.handlers.listFeedbackHandler)
		r.Get("/reviews", service.handlers.reviewsHandler)
		r.Get("/predictions", service.handlers.dishPredictionsHandler)

		r.Post("/chat", service.handlers.chatHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.CheckJWTMiddleware())

			r.Get("/servings", service.handlers.listServingsHandler)
			r.Post("/servings", service.handlers.addServingHandler)
			r.Delete("/servings/{id}", service.handlers.deleteServingHandler)

			r.Post("/archive", service.handlers.archiveHandler)
			r.Post("/reset", service.handlers.resetHandler)

			r.Get("/events", service.handlers.listEventsHandler)
			r.Post("/events", service.handlers.addEventHandler)
			r.Delete("/events/{id}", service.handlers.deleteEventHandler)

			r.Post("/food", service.handlers.addFoodHandler)
			r.Get("/available-food", service.handlers.availableFoodHandler)
			r.Post("/reserve-food", service.handlers.reserveFoodHandler)
			r.Post("/unreserve-food", service.handlers.unreserveFoodHandler)
			r.Delete("/food/{id}", service.handlers.deleteFoodHandler)
			r.Delete("/reserved/{id}", service.handlers.deleteReservedHandler)

			r.Post("/save-cart", service.handlers.saveCartHandler)
			r.Delete("/cart", service.handlers.clearCartHandler)
			r.Get("/requests", service.handlers.listRequestsHandler)
			r.Post("/requests/{id}/status", service.handlers.setRequestStatusHandler)

			r.Get("/model/summary", service.handlers.modelSummaryHandler)
			r.Post("/model/recalibrate", service.handlers.recalibrateHandler)
			r.Get("/dataformodel/{period}", service.handlers.seriesHandler)
			r.Get("/predicted/{period}", service.handlers.predictedSeriesHandler)
			r.Get("/forecast/weekly", service.handlers.weeklyForecastHandler)
			r.Get("/metrics/weekly", service.handlers.weeklyMetricsHandler)
			r.Get("/metrics/monthly", service.handlers.monthlyMetricsHandler)

			r.Post("/partnership-requests", service.handlers.createPartnershipHandler)
			r.Get("/partnership-requests/outgoing", service.handlers.outgoingPartnershipsHandler)
			r.Get("/restaurants", service.handlers.listRestaurantsHandler)
		})
	})

	fileServer := http.FileServer(http.Dir(service.app.Files().PublicDir()))
	router.Handle("/data/*", http.StripPrefix("/data/", fileServer))

	return router
}
