package format

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var peso = message.NewPrinter(language.MustParse("en-PH"))

// Peso renders an amount as a Philippine Peso string with exactly two
// fraction digits, rounded. Peso(0) == "₱0.00".
func Peso(amount float64) string {
	return peso.Sprintf("₱%.2f", amount)
}

// NewID returns an identifier unique across the lifetime of the process.
func NewID() string {
	return uuid.NewString()
}
