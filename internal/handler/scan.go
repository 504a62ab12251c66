package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lmagsino/grocery-app/internal/list"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// BarcodeLookup resolves a barcode to a display name, reporting false for
// every kind of miss. Satisfied by lookup.Client; tests substitute fakes.
type BarcodeLookup interface {
	Lookup(ctx context.Context, barcode string) (string, bool)
}

// ScanHandler drives the scanner workflow: visibility, and turning a scanned
// barcode into a staged prefill for the add modal.
type ScanHandler struct {
	store  *list.Store
	lookup BarcodeLookup
	hub    *ws.Hub
	logger *slog.Logger
}

func NewScanHandler(store *list.Store, lookup BarcodeLookup, hub *ws.Hub, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{store: store, lookup: lookup, hub: hub, logger: logger}
}

func (h *ScanHandler) OpenScanner(w http.ResponseWriter, r *http.Request) {
	token := h.store.OpenScanner()
	h.hub.Broadcast(ws.NewMessage("scanner", "opened", "", nil))
	writeJSON(w, http.StatusOK, map[string]uint64{"token": token})
}

func (h *ScanHandler) CloseScanner(w http.ResponseWriter, r *http.Request) {
	h.store.CloseScanner()
	h.hub.Broadcast(ws.NewMessage("scanner", "closed", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

type scanResponse struct {
	Found  bool   `json:"found"`
	Name   string `json:"name"`
	Staged bool   `json:"staged"`
}

// Scan looks up a scanned barcode and stages the result as the add-modal
// prefill. The scan-session token is captured before the lookup suspends;
// if the user dismisses the scanner while the lookup is in flight, the
// store discards the late result and Staged reports false. A lookup miss
// still stages the barcode with an empty name for manual entry.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Barcode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "barcode is required"})
		return
	}

	token, open := h.store.ScannerSession()
	if !open {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "scanner is not open"})
		return
	}

	name, found := h.lookup.Lookup(r.Context(), req.Barcode)
	if !found {
		h.logger.Debug("no product for barcode, falling back to manual entry", "barcode", req.Barcode)
	}

	staged := h.store.OpenAddModalWithScan(token, name, req.Barcode)
	if staged {
		h.hub.Broadcast(ws.NewMessage("scan", "staged", "", map[string]any{"barcode": req.Barcode}))
	}
	writeJSON(w, http.StatusOK, scanResponse{Found: found, Name: name, Staged: staged})
}
