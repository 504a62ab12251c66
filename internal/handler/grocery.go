package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lmagsino/grocery-app/internal/format"
	"github.com/lmagsino/grocery-app/internal/list"
	"github.com/lmagsino/grocery-app/internal/model"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// GroceryHandler exposes the live shopping list over JSON.
type GroceryHandler struct {
	store  *list.Store
	hub    *ws.Hub
	logger *slog.Logger
}

func NewGroceryHandler(store *list.Store, hub *ws.Hub, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{store: store, hub: hub, logger: logger}
}

// itemRequest carries the plain value inputs of the add/update operations.
// Price is a pointer so a missing field is distinguishable from zero; the
// handler enforces the controller's precondition that it is a non-negative
// number before the store is touched.
type itemRequest struct {
	Name    string   `json:"name"`
	Price   *float64 `json:"price"`
	Barcode string   `json:"barcode"`
}

func (req *itemRequest) validPrice() bool {
	return req.Price != nil && *req.Price >= 0
}

type itemsResponse struct {
	Items          []model.GroceryItem `json:"items"`
	ItemCount      int                 `json:"item_count"`
	Total          float64             `json:"total"`
	FormattedTotal string              `json:"formatted_total"`
}

func (h *GroceryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validPrice() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be a non-negative number"})
		return
	}

	item := h.store.AddItem(req.Name, *req.Price, req.Barcode)
	h.hub.Broadcast(ws.NewMessage("item", "added", item.ID, h.listExtra()))
	writeJSON(w, http.StatusCreated, item)
}

func (h *GroceryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items()
	if items == nil {
		items = []model.GroceryItem{}
	}
	total := h.store.Total()
	writeJSON(w, http.StatusOK, itemsResponse{
		Items:          items,
		ItemCount:      len(items),
		Total:          total,
		FormattedTotal: format.Peso(total),
	})
}

func (h *GroceryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validPrice() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be a non-negative number"})
		return
	}

	item, ok := h.store.UpdateItem(id, req.Name, *req.Price)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "updated", item.ID, h.listExtra()))
	writeJSON(w, http.StatusOK, item)
}

func (h *GroceryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if !h.store.DeleteItem(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "deleted", id, h.listExtra()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroceryHandler) ClearItems(w http.ResponseWriter, r *http.Request) {
	h.store.ClearAllItems()
	h.hub.Broadcast(ws.NewMessage("list", "cleared", "", h.listExtra()))
	w.WriteHeader(http.StatusNoContent)
}

// stateResponse is the full snapshot the UI reads on (re)connect.
type stateResponse struct {
	list.Snapshot
	FormattedTotal string `json:"formatted_total"`
}

func (h *GroceryHandler) State(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{
		Snapshot:       snap,
		FormattedTotal: format.Peso(snap.Total),
	})
}

// listExtra attaches the recomputed derived values to change broadcasts so
// the UI's count badge and total can update without a refetch.
func (h *GroceryHandler) listExtra() map[string]any {
	return map[string]any{
		"item_count": h.store.ItemCount(),
		"total":      h.store.Total(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
