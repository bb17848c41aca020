// Package locale formats money, numbers and dates the way the board shows them
// to Brazilian users.
package locale

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Tag is the single locale the dashboard speaks.
var Tag = language.BrazilianPortuguese

const DateLayout = "02/01/2006"

func printer() *message.Printer {
	return message.NewPrinter(Tag)
}

// Currency renders v as Brazilian reais, e.g. "R$ 150.000,00".
func Currency(v float64) string {
	return printer().Sprintf("R$ %.2f", v)
}

// Number renders v with pt-BR grouping and the given number of decimals.
func Number(v float64, decimals int) string {
	return printer().Sprint(number.Decimal(v, number.Scale(decimals)))
}

// Percent renders v (already scaled to 0-100) with one decimal place.
func Percent(v float64) string {
	return printer().Sprintf("%.1f%%", v)
}

func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

var shortMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthLabel renders the month of t as "jan/2024".
func MonthLabel(t time.Time) string {
	return shortMonths[t.Month()-1] + "/" + t.Format("2006")
}
