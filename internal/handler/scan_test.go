package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lmagsino/grocery-app/internal/list"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// fakeLookup satisfies BarcodeLookup. inFlight, when set, runs while the
// lookup is suspended, simulating user actions racing a slow response.
type fakeLookup struct {
	name     string
	ok       bool
	inFlight func()
}

func (f *fakeLookup) Lookup(ctx context.Context, barcode string) (string, bool) {
	if f.inFlight != nil {
		f.inFlight()
	}
	return f.name, f.ok
}

func newScanMux(t *testing.T, lu BarcodeLookup) (*http.ServeMux, *list.Store) {
	t.Helper()
	logger := slog.Default()
	store := list.NewStore(logger)
	hub := ws.NewHub(logger)
	scanH := NewScanHandler(store, lu, hub, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scanner/open", scanH.OpenScanner)
	mux.HandleFunc("POST /api/scanner/close", scanH.CloseScanner)
	mux.HandleFunc("POST /api/scanner/scan", scanH.Scan)
	return mux, store
}

func scanPost(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestScanStagesPrefill(t *testing.T) {
	mux, store := newScanMux(t, &fakeLookup{name: "Corned Beef (Argentina)", ok: true})

	if rec := scanPost(t, mux, "/api/scanner/open", ""); rec.Code != http.StatusOK {
		t.Fatalf("open scanner: status = %d", rec.Code)
	}

	rec := scanPost(t, mux, "/api/scanner/scan", `{"barcode":"4800016641503"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("scan: status = %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode[scanResponse](t, rec)
	if !resp.Found || !resp.Staged || resp.Name != "Corned Beef (Argentina)" {
		t.Errorf("scan response = %+v", resp)
	}

	ui := store.UIState()
	if !ui.AddModalOpen || ui.ScannerOpen {
		t.Errorf("ui after scan = %+v", ui)
	}
	if ui.Scanned == nil || ui.Scanned.Barcode != "4800016641503" || ui.Scanned.Name != "Corned Beef (Argentina)" {
		t.Errorf("scanned = %+v", ui.Scanned)
	}
}

func TestScanLookupMissStagesEmptyName(t *testing.T) {
	mux, store := newScanMux(t, &fakeLookup{ok: false})

	scanPost(t, mux, "/api/scanner/open", "")
	rec := scanPost(t, mux, "/api/scanner/scan", `{"barcode":"000"}`)

	resp := decode[scanResponse](t, rec)
	if resp.Found {
		t.Error("expected lookup miss")
	}
	if !resp.Staged {
		t.Error("a miss should still stage the barcode for manual entry")
	}

	ui := store.UIState()
	if ui.Scanned == nil || ui.Scanned.Name != "" || ui.Scanned.Barcode != "000" {
		t.Errorf("scanned = %+v", ui.Scanned)
	}
}

func TestScanWithoutScannerOpen(t *testing.T) {
	mux, _ := newScanMux(t, &fakeLookup{ok: true, name: "X"})

	rec := scanPost(t, mux, "/api/scanner/scan", `{"barcode":"111"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestScanMissingBarcode(t *testing.T) {
	mux, _ := newScanMux(t, &fakeLookup{})

	scanPost(t, mux, "/api/scanner/open", "")
	rec := scanPost(t, mux, "/api/scanner/scan", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestScanDismissedMidLookup(t *testing.T) {
	// The user closes the scanner while the lookup is in flight. The late
	// response must not reopen the add workflow.
	var store *list.Store
	lu := &fakeLookup{name: "Late Product", ok: true}
	lu.inFlight = func() { store.CloseScanner() }

	mux, s := newScanMux(t, lu)
	store = s

	scanPost(t, mux, "/api/scanner/open", "")
	rec := scanPost(t, mux, "/api/scanner/scan", `{"barcode":"222"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decode[scanResponse](t, rec)
	if resp.Staged {
		t.Error("late scan result must be discarded, not staged")
	}

	ui := store.UIState()
	if ui.AddModalOpen || ui.Scanned != nil {
		t.Errorf("late scan mutated ui: %+v", ui)
	}
}

func TestScanSupersededByReopenedScanner(t *testing.T) {
	// The user closes and reopens the scanner while a lookup from the old
	// session is in flight; the old result must not land in the new session.
	var store *list.Store
	lu := &fakeLookup{name: "Old Session Product", ok: true}
	lu.inFlight = func() {
		store.CloseScanner()
		store.OpenScanner()
	}

	mux, s := newScanMux(t, lu)
	store = s

	scanPost(t, mux, "/api/scanner/open", "")
	rec := scanPost(t, mux, "/api/scanner/scan", `{"barcode":"333"}`)

	if resp := decode[scanResponse](t, rec); resp.Staged {
		t.Error("result from a superseded session must be discarded")
	}
	if ui := store.UIState(); !ui.ScannerOpen {
		t.Error("reopened scanner should still be open")
	}
}
