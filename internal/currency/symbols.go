package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Info describes one supported display currency.
type Info struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Supported is the static table of currencies offered in the UI.
// It is read-only configuration, not part of the conversion logic.
var Supported = map[string]Info{
	"USD": {Name: "US Dollar", Symbol: "$"},
	"EUR": {Name: "Euro", Symbol: "€"},
	"GBP": {Name: "British Pound", Symbol: "£"},
	"JPY": {Name: "Japanese Yen", Symbol: "¥"},
	"CAD": {Name: "Canadian Dollar", Symbol: "C$"},
	"AUD": {Name: "Australian Dollar", Symbol: "A$"},
	"CHF": {Name: "Swiss Franc", Symbol: "CHF"},
	"CNY": {Name: "Chinese Yuan", Symbol: "¥"},
	"INR": {Name: "Indian Rupee", Symbol: "₹"},
	"KRW": {Name: "South Korean Won", Symbol: "₩"},
	"SGD": {Name: "Singapore Dollar", Symbol: "S$"},
	"HKD": {Name: "Hong Kong Dollar", Symbol: "HK$"},
	"NOK": {Name: "Norwegian Krone", Symbol: "kr"},
	"SEK": {Name: "Swedish Krona", Symbol: "kr"},
	"DKK": {Name: "Danish Krone", Symbol: "kr"},
	"PLN": {Name: "Polish Złoty", Symbol: "zł"},
	"CZK": {Name: "Czech Koruna", Symbol: "Kč"},
	"HUF": {Name: "Hungarian Forint", Symbol: "Ft"},
	"ILS": {Name: "Israeli Shekel", Symbol: "₪"},
	"NZD": {Name: "New Zealand Dollar", Symbol: "NZ$"},
}

// IsSupported reports whether code is in the display-currency table.
func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}

// FormatAmount renders an amount with the currency's symbol, falling back
// to "12.34 XYZ" for codes outside the table.
func FormatAmount(amount decimal.Decimal, code string) string {
	info, ok := Supported[code]
	if !ok {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	return info.Symbol + amount.StringFixed(2)
}
