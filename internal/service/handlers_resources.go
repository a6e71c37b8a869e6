package service

import (
	"errors"
	"net/http"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/models"

	"github.com/go-chi/chi/v5"
)

// listServingsHandler returns today's serving records, persisting the
// filtered view and refreshing the public copy as a side effect.
func (handlers *handlers) listServingsHandler(res http.ResponseWriter, req *http.Request) {
	servings, err := handlers.app.ProcessListServings()
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, servings)
}

type addServingResponse struct {
	Message string         `json:"message"`
	Item    models.Serving `json:"item"`
}

func (handlers *handlers) addServingHandler(res http.ResponseWriter, req *http.Request) {
	var serving models.Serving
	if !readBody(res, req, &serving) {
		return
	}

	created, err := handlers.app.ProcessAddServing(serving)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, addServingResponse{Message: "Added", Item: created})
}

func (handlers *handlers) deleteServingHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessDeleteServing(chi.URLParam(req, "id")); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Deleted"})
}

func (handlers *handlers) archiveHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessArchive(); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Archived"})
}

func (handlers *handlers) resetHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessResetToday(); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Today cleared"})
}

// listEventsHandler returns upcoming events, pruning past ones from storage.
func (handlers *handlers) listEventsHandler(res http.ResponseWriter, req *http.Request) {
	events, err := handlers.app.ProcessUpcomingEvents()
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, events)
}

func (handlers *handlers) addEventHandler(res http.ResponseWriter, req *http.Request) {
	var event models.Event
	if !readBody(res, req, &event) {
		return
	}

	if _, err := handlers.app.ProcessAddEvent(event); err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeErrorResponse(res, "Missing fields", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Event added"})
}

func (handlers *handlers) deleteEventHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessDeleteEvent(chi.URLParam(req, "id")); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Event deleted"})
}

func (handlers *handlers) addFeedbackHandler(res http.ResponseWriter, req *http.Request) {
	var feedback models.Feedback
	if !readBody(res, req, &feedback) {
		return
	}

	if _, err := handlers.app.ProcessAddFeedback(feedback); err != nil {
		writeErrorResponse(res, "Unable to save feedback", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Feedback submitted successfully"})
}

func (handlers *handlers) listFeedbackHandler(res http.ResponseWriter, req *http.Request) {
	feedback, err := handlers.app.ProcessListFeedback()
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, feedback)
}

func (handlers *handlers) reviewsHandler(res http.ResponseWriter, req *http.Request) {
	reviews, err := handlers.app.ProcessReviews()
	if err != nil {
		writeErrorResponse(res, "Failed to load reviews.", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, reviews)
}
