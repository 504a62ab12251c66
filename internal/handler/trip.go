package handler

import (
	"log/slog"
	"net/http"

	"github.com/lmagsino/grocery-app/internal/format"
	"github.com/lmagsino/grocery-app/internal/list"
	"github.com/lmagsino/grocery-app/internal/model"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// TripHandler exposes the save checkpoint and the trip history.
type TripHandler struct {
	store  *list.Store
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTripHandler(store *list.Store, hub *ws.Hub, logger *slog.Logger) *TripHandler {
	return &TripHandler{store: store, hub: hub, logger: logger}
}

type tripResponse struct {
	model.ShoppingTrip
	FormattedTotal string `json:"formatted_total"`
}

func withFormattedTotal(trip model.ShoppingTrip) tripResponse {
	return tripResponse{ShoppingTrip: trip, FormattedTotal: format.Peso(trip.Total)}
}

// SaveTrip checkpoints the live list. Saving an empty list is defined as a
// no-op, not an error: it answers 204 and changes nothing.
func (h *TripHandler) SaveTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.store.SaveTrip()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.hub.Broadcast(ws.NewMessage("trip", "saved", trip.ID, map[string]any{
		"item_count": 0,
		"total":      float64(0),
	}))
	writeJSON(w, http.StatusCreated, withFormattedTotal(trip))
}

func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	history := h.store.History()
	trips := make([]tripResponse, 0, len(history))
	for _, trip := range history {
		trips = append(trips, withFormattedTotal(trip))
	}
	writeJSON(w, http.StatusOK, trips)
}

func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.store.Trip(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "trip not found"})
		return
	}
	writeJSON(w, http.StatusOK, withFormattedTotal(trip))
}
