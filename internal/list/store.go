package list

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lmagsino/grocery-app/internal/format"
	"github.com/lmagsino/grocery-app/internal/model"
)

// Store is the single source of truth for the live shopping list, the trip
// history, and the modal/scanner selection state. It holds everything in
// memory for the lifetime of the process. Safe for concurrent use; every
// mutation is a single critical section, so readers never observe a
// half-applied transition.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	items   []model.GroceryItem
	history []model.ShoppingTrip

	addModalOpen bool
	editing      *model.GroceryItem
	scanned      *model.ScannedProduct
	scannerOpen  bool
	scanSession  uint64
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// UIState is a snapshot of the modal/scanner selection state.
type UIState struct {
	AddModalOpen bool                  `json:"add_modal_open"`
	Editing      *model.GroceryItem    `json:"editing,omitempty"`
	Scanned      *model.ScannedProduct `json:"scanned,omitempty"`
	ScannerOpen  bool                  `json:"scanner_open"`
}

// displayName trims a raw name and substitutes the default label when
// nothing remains. Stored names are never empty.
func displayName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return model.DefaultItemName
}

// AddItem appends a new item to the live list and returns it. Any open
// add/edit modal is closed and pending scan state is cleared.
func (s *Store) AddItem(name string, price float64, barcode string) model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.GroceryItem{
		ID:        format.NewID(),
		Name:      displayName(name),
		Price:     price,
		Barcode:   barcode,
		CreatedAt: time.Now().UTC(),
	}
	s.items = append(s.items, item)
	s.addModalOpen = false
	s.scanned = nil
	return item
}

// UpdateItem replaces the name and price of the item with the given id,
// preserving its id, barcode, and creation time. It reports whether the id
// was found; on a missing id the list is left untouched. Edit-selection
// state is cleared and the modal closed either way.
func (s *Store) UpdateItem(id, name string, price float64) (model.GroceryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editing = nil
	s.addModalOpen = false

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = displayName(name)
			s.items[i].Price = price
			return s.items[i], true
		}
	}
	return model.GroceryItem{}, false
}

// DeleteItem removes the item with the given id, preserving the order of
// the rest. It reports whether the id was found.
func (s *Store) DeleteItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAllItems empties the live list. History is untouched.
func (s *Store) ClearAllItems() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// SaveTrip checkpoints the live list into history: it builds a trip from a
// copy of the current items and their total, prepends it to history, and
// empties the live list, all in one critical section. Saving an empty list
// is a no-op and reports false.
func (s *Store) SaveTrip() (model.ShoppingTrip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return model.ShoppingTrip{}, false
	}

	trip := model.ShoppingTrip{
		ID:    format.NewID(),
		Date:  time.Now().UTC(),
		Items: append([]model.GroceryItem(nil), s.items...),
		Total: sum(s.items),
	}
	s.history = append([]model.ShoppingTrip{trip}, s.history...)
	s.items = nil

	s.logger.Info("trip saved", "trip_id", trip.ID, "items", len(trip.Items), "total", trip.Total)
	return trip, true
}

func sum(items []model.GroceryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// Items returns a copy of the live list in insertion order.
func (s *Store) Items() []model.GroceryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.GroceryItem(nil), s.items...)
}

// ItemCount returns the length of the live list.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total returns the sum of the live list's prices, recomputed on every call.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sum(s.items)
}

// History returns a copy of the saved trips, most recent first.
func (s *Store) History() []model.ShoppingTrip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ShoppingTrip(nil), s.history...)
}

// Trip returns the saved trip with the given id.
func (s *Store) Trip(id string) (model.ShoppingTrip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, trip := range s.history {
		if trip.ID == id {
			return trip, true
		}
	}
	return model.ShoppingTrip{}, false
}

// UIState returns a snapshot of the modal/scanner selection state.
func (s *Store) UIState() UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uiStateLocked()
}

// uiStateLocked copies the selection state. Callers must hold s.mu.
func (s *Store) uiStateLocked() UIState {
	ui := UIState{
		AddModalOpen: s.addModalOpen,
		ScannerOpen:  s.scannerOpen,
	}
	if s.editing != nil {
		editing := *s.editing
		ui.Editing = &editing
	}
	if s.scanned != nil {
		scanned := *s.scanned
		ui.Scanned = &scanned
	}
	return ui
}

// Snapshot is a consistent view of the whole application state, taken under
// one read lock so no mutation can interleave between its fields.
type Snapshot struct {
	Items     []model.GroceryItem  `json:"items"`
	ItemCount int                  `json:"item_count"`
	Total     float64              `json:"total"`
	History   []model.ShoppingTrip `json:"history"`
	UI        UIState              `json:"ui"`
}

// Snapshot returns the live list, derived values, history, and UI-selection
// state as one consistent view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Items:     append([]model.GroceryItem{}, s.items...),
		ItemCount: len(s.items),
		Total:     sum(s.items),
		History:   append([]model.ShoppingTrip{}, s.history...),
		UI:        s.uiStateLocked(),
	}
}

// OpenAddModal opens the add workflow with a blank form.
func (s *Store) OpenAddModal() {
	s.mu.Lock()
	s.editing = nil
	s.scanned = nil
	s.addModalOpen = true
	s.mu.Unlock()
}

// OpenEditModal selects the item with the given id and opens the add/edit
// workflow in edit mode. It reports whether the id was found; on a missing
// id nothing opens.
func (s *Store) OpenEditModal(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			editing := s.items[i]
			s.editing = &editing
			s.scanned = nil
			s.addModalOpen = true
			return true
		}
	}
	return false
}

// CloseModal clears all modal-related selection state.
func (s *Store) CloseModal() {
	s.mu.Lock()
	s.editing = nil
	s.scanned = nil
	s.addModalOpen = false
	s.mu.Unlock()
}

// OpenScanner makes the scanner visible and starts a new scan session,
// invalidating tokens from any earlier session. The returned token must
// accompany the scan result handed back via OpenAddModalWithScan.
func (s *Store) OpenScanner() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scanSession++
	s.scannerOpen = true
	return s.scanSession
}

// CloseScanner hides the scanner and invalidates the current scan session,
// so in-flight lookups for it are discarded when they resolve.
func (s *Store) CloseScanner() {
	s.mu.Lock()
	s.scanSession++
	s.scannerOpen = false
	s.mu.Unlock()
}

// ScannerSession returns the active scan session token, if the scanner is
// visible.
func (s *Store) ScannerSession() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanSession, s.scannerOpen
}

// OpenAddModalWithScan stages a scanned product as the prefill for the add
// workflow and closes the scanner. The token must match the scan session
// that was active when the barcode was scanned; a stale token (the user
// dismissed or reopened the scanner while the lookup was in flight) is
// discarded without touching any state.
func (s *Store) OpenAddModalWithScan(token uint64, name, barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scannerOpen || token != s.scanSession {
		s.logger.Debug("discarding stale scan result", "barcode", barcode)
		return false
	}

	s.editing = nil
	s.scanned = &model.ScannedProduct{Name: name, Barcode: barcode}
	s.scannerOpen = false
	s.scanSession++
	s.addModalOpen = true
	return true
}
