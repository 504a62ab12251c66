package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lmagsino/grocery-app/internal/handler"
	"github.com/lmagsino/grocery-app/internal/list"
	"github.com/lmagsino/grocery-app/internal/lookup"
	"github.com/lmagsino/grocery-app/internal/middleware"
	ws "github.com/lmagsino/grocery-app/internal/websocket"
)

// scanRateLimit bounds outbound lookups per client IP; the scan route fans
// out to a public product database.
const (
	scanRateLimit  = 30
	scanRateWindow = time.Minute
)

type Server struct {
	store       *list.Store
	hub         *ws.Hub
	groceryH    *handler.GroceryHandler
	tripH       *handler.TripHandler
	scanH       *handler.ScanHandler
	modalH      *handler.ModalHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(lookupBaseURL string, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	store := list.NewStore(logger.With("component", "list"))
	lookupClient := lookup.NewClient(lookupBaseURL, logger.With("component", "lookup"))

	return &Server{
		store:       store,
		hub:         hub,
		groceryH:    handler.NewGroceryHandler(store, hub, logger.With("component", "grocery")),
		tripH:       handler.NewTripHandler(store, hub, logger.With("component", "trip")),
		scanH:       handler.NewScanHandler(store, lookupClient, hub, logger.With("component", "scan")),
		modalH:      handler.NewModalHandler(store, hub),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Store returns the state controller, the single source of truth for the
// session.
func (s *Server) Store() *list.Store {
	return s.store
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/state", s.groceryH.State)

	mux.HandleFunc("GET /api/items", s.groceryH.ListItems)
	mux.HandleFunc("POST /api/items", s.groceryH.CreateItem)
	mux.HandleFunc("PUT /api/items/{id}", s.groceryH.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.groceryH.DeleteItem)
	mux.HandleFunc("DELETE /api/items", s.groceryH.ClearItems)

	mux.HandleFunc("GET /api/trips", s.tripH.ListTrips)
	mux.HandleFunc("GET /api/trips/{id}", s.tripH.GetTrip)
	mux.HandleFunc("POST /api/trips", s.tripH.SaveTrip)

	mux.HandleFunc("POST /api/modal/add", s.modalH.OpenAdd)
	mux.HandleFunc("POST /api/modal/edit/{id}", s.modalH.OpenEdit)
	mux.HandleFunc("POST /api/modal/close", s.modalH.Close)

	mux.HandleFunc("POST /api/scanner/open", s.scanH.OpenScanner)
	mux.HandleFunc("POST /api/scanner/close", s.scanH.CloseScanner)
	mux.Handle("POST /api/scanner/scan", s.rateLimitedScan(s.scanH.Scan))

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedScan(h http.HandlerFunc) http.Handler {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	return middleware.RateLimit(s.rateLimiter, keyFunc, scanRateLimit, scanRateWindow)(h)
}
