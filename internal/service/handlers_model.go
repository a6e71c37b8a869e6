package service

import (
	"errors"
	"net/http"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/chat"
	"github.com/taetu445/RescueBites/internal/trainer"

	"github.com/go-chi/chi/v5"
)

func (handlers *handlers) modelSummaryHandler(res http.ResponseWriter, req *http.Request) {
	summary, err := handlers.app.ProcessModelSummary()
	if err != nil {
		writeErrorResponse(res, "Failed to load model summary", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, summary)
}

// recalibrateHandler triggers the external trainer and responds with the
// refreshed summary. The trainer bounds its own runtime; a timeout is
// reported distinctly so the caller knows a retry is safe.
func (handlers *handlers) recalibrateHandler(res http.ResponseWriter, req *http.Request) {
	summary, err := handlers.app.ProcessRecalibrate(req.Context())
	if err != nil {
		if errors.Is(err, trainer.ErrTimeout) {
			writeErrorResponse(res, "Model training timed out", http.StatusInternalServerError)
			return
		}
		writeErrorResponse(res, "Model training failed", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, summary)
}

func (handlers *handlers) seriesHandler(res http.ResponseWriter, req *http.Request) {
	series, err := handlers.app.ProcessSeries(chi.URLParam(req, "period"))
	if err != nil {
		if errors.Is(err, app.ErrInvalidPeriod) {
			writeErrorResponse(res, "Invalid period", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, series)
}

func (handlers *handlers) predictedSeriesHandler(res http.ResponseWriter, req *http.Request) {
	predicted, err := handlers.app.ProcessPredictedSeries(chi.URLParam(req, "period"))
	if err != nil {
		if errors.Is(err, app.ErrInvalidPeriod) {
			writeErrorResponse(res, "Invalid period", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, predicted)
}

func (handlers *handlers) weeklyForecastHandler(res http.ResponseWriter, req *http.Request) {
	forecast, err := handlers.app.ProcessWeeklyForecast()
	if err != nil {
		writeErrorResponse(res, "Failed to load weekly predictions", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, forecast)
}

func (handlers *handlers) weeklyMetricsHandler(res http.ResponseWriter, req *http.Request) {
	handlers.metricsResponse(res, app.PeriodWeekly)
}

func (handlers *handlers) monthlyMetricsHandler(res http.ResponseWriter, req *http.Request) {
	handlers.metricsResponse(res, app.PeriodMonthly)
}

func (handlers *handlers) metricsResponse(res http.ResponseWriter, period string) {
	metrics, err := handlers.app.ProcessMetrics(period)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, metrics)
}

func (handlers *handlers) dishPredictionsHandler(res http.ResponseWriter, req *http.Request) {
	predictions, err := handlers.app.ProcessDishPredictions()
	if err != nil {
		writeErrorResponse(res, "Failed to load predictions", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, predictions)
}

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// chatHandler forwards the conversation to the completion provider.
func (handlers *handlers) chatHandler(res http.ResponseWriter, req *http.Request) {
	var payload chatRequest
	if !readBody(res, req, &payload) {
		return
	}

	reply, err := handlers.app.ProcessChat(req.Context(), payload.Messages)
	if err != nil {
		if errors.Is(err, app.ErrInvalidPayload) {
			writeErrorResponse(res, "Invalid payload", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, "Chat completion request failed", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, chatResponse{Reply: reply})
}
