package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the ruble sign shown after every price.
const DefaultSymbol = "₽"

// Formatter renders whole-unit prices with locale digit grouping.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for tag. An empty symbol falls back to DefaultSymbol.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	if strings.TrimSpace(symbol) == "" {
		symbol = DefaultSymbol
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// NewRussian is the storefront's only locale.
func NewRussian(symbol string) *Formatter {
	return NewFormatter(language.Russian, symbol)
}

// Format renders amount as e.g. "89 990 ₽".
func (f *Formatter) Format(amount int64) string {
	return f.printer.Sprintf("%d", amount) + " " + f.symbol
}
