package handler

import (
	"net/http"

	"github.com/lmagsino/grocery-app/internal/list"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// ModalHandler toggles the add/edit workflow selection state.
type ModalHandler struct {
	store *list.Store
	hub   *ws.Hub
}

func NewModalHandler(store *list.Store, hub *ws.Hub) *ModalHandler {
	return &ModalHandler{store: store, hub: hub}
}

func (h *ModalHandler) OpenAdd(w http.ResponseWriter, r *http.Request) {
	h.store.OpenAddModal()
	h.hub.Broadcast(ws.NewMessage("modal", "opened", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ModalHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.OpenEditModal(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}
	h.hub.Broadcast(ws.NewMessage("modal", "opened", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ModalHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.store.CloseModal()
	h.hub.Broadcast(ws.NewMessage("modal", "closed", "", nil))
	w.WriteHeader(http.StatusNoContent)
}
