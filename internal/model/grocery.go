package model

import "time"

// DefaultItemName is substituted when an item is created or updated with an
// empty or all-whitespace name.
const DefaultItemName = "Item"

type GroceryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Barcode   string    `json:"barcode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ShoppingTrip is an immutable snapshot of a completed shopping session.
// Items and Total are frozen at save time and never recomputed.
type ShoppingTrip struct {
	ID    string        `json:"id"`
	Date  time.Time     `json:"date"`
	Items []GroceryItem `json:"items"`
	Total float64       `json:"total"`
}

// ScannedProduct is a scanned-but-unconfirmed prefill for the add workflow.
// Name may be empty when the barcode lookup returned no result.
type ScannedProduct struct {
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
}
