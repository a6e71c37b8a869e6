package service

import (
	"errors"
	"net/http"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/models"

	"github.com/go-chi/chi/v5"
)

type addFoodResponse struct {
	Message string          `json:"message"`
	Item    models.FoodItem `json:"item"`
}

func (handlers *handlers) addFoodHandler(res http.ResponseWriter, req *http.Request) {
	var item models.FoodItem
	if !readBody(res, req, &item) {
		return
	}

	created, err := handlers.app.ProcessAddFood(item)
	if err != nil {
		if errors.Is(err, app.ErrMissingFields) {
			writeErrorResponse(res, "Missing fields", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, addFoodResponse{Message: "Food added", Item: created})
}

// availableFoodHandler returns fresh available listings; stale and claimed
// listings are pruned from storage as a side effect.
func (handlers *handlers) availableFoodHandler(res http.ResponseWriter, req *http.Request) {
	items, err := handlers.app.ProcessAvailableFood()
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, items)
}

type reserveResponse struct {
	Success bool `json:"success"`
}

func (handlers *handlers) reserveFoodHandler(res http.ResponseWriter, req *http.Request) {
	var payload models.ReserveRequest
	if !readBody(res, req, &payload) {
		return
	}

	if err := handlers.app.ProcessReserveFood(payload.ID); err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			writeErrorResponse(res, "Not found", http.StatusNotFound)
		case errors.Is(err, app.ErrNotReservable):
			writeErrorResponse(res, "Item is not available", http.StatusConflict)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSONResponse(res, reserveResponse{Success: true})
}

func (handlers *handlers) unreserveFoodHandler(res http.ResponseWriter, req *http.Request) {
	var payload models.ReserveRequest
	if !readBody(res, req, &payload) {
		return
	}

	if err := handlers.app.ProcessUnreserveFood(payload.ID); err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			writeErrorResponse(res, "Not found", http.StatusNotFound)
		case errors.Is(err, app.ErrNotReservable):
			writeErrorResponse(res, "Item is already booked", http.StatusConflict)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSONResponse(res, reserveResponse{Success: true})
}

func (handlers *handlers) deleteFoodHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessDeleteFood(chi.URLParam(req, "id")); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Food item deleted"})
}

func (handlers *handlers) deleteReservedHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessDeleteReserved(chi.URLParam(req, "id")); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Reserved item removed"})
}

func (handlers *handlers) saveCartHandler(res http.ResponseWriter, req *http.Request) {
	var payload models.SaveCartRequest
	if !readBody(res, req, &payload) {
		return
	}

	if err := handlers.app.ProcessSaveCart(payload.Items); err != nil {
		if errors.Is(err, app.ErrInvalidPayload) {
			writeErrorResponse(res, "Invalid payload", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Cart saved and requests created"})
}

func (handlers *handlers) clearCartHandler(res http.ResponseWriter, req *http.Request) {
	if err := handlers.app.ProcessClearCart(); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, models.MessageResponse{Message: "Cart cleared"})
}

func (handlers *handlers) listRequestsHandler(res http.ResponseWriter, req *http.Request) {
	requests, err := handlers.app.ProcessListRequests()
	if err != nil {
		writeErrorResponse(res, "Failed to load requests data", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(res, requests)
}

type statusUpdateResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Status  string `json:"status"`
}

func (handlers *handlers) setRequestStatusHandler(res http.ResponseWriter, req *http.Request) {
	var payload models.StatusUpdateRequest
	if !readBody(res, req, &payload) {
		return
	}

	id := chi.URLParam(req, "id")
	if err := handlers.app.ProcessSetRequestStatus(id, payload.Status); err != nil {
		switch {
		case errors.Is(err, app.ErrNotFound):
			writeErrorResponse(res, "Not found", http.StatusNotFound)
		case errors.Is(err, app.ErrInvalidStatus):
			writeErrorResponse(res, "Invalid status", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSONResponse(res, statusUpdateResponse{Message: "Status updated", ID: id, Status: payload.Status})
}
