// Package money formatea importes para documentos y correos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Format importe con separador de miles y dos decimales: 1234.5 -> "$1,234.50".
func Format(d decimal.Decimal) string {
	v := d.Round(2).InexactFloat64()
	return printer.Sprintf("$%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatWithCurrency igual que Format con el código de moneda al final: "$98.99 AUD".
func FormatWithCurrency(d decimal.Decimal, currency string) string {
	if currency == "" {
		return Format(d)
	}
	return Format(d) + " " + currency
}
