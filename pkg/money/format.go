package money

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos para presentación en una moneda y locale.
// Solo presentación: el motor de precios trabaja siempre con números crudos.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
	scale   int
	decimal string // separador decimal del locale
}

// NewFormatter construye el formateador para un código ISO 4217 y un locale BCP 47.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("moneda %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(tag)
	return &Formatter{unit: unit, printer: p, scale: scale, decimal: decimalSeparator(p)}, nil
}

// Code código ISO de la moneda.
func (f *Formatter) Code() string { return f.unit.String() }

// Precision decimales estándar de la moneda (USD 2, JPY 0, …).
func (f *Formatter) Precision() int32 { return int32(f.scale) }

// Format devuelve símbolo + monto con separadores del locale, p. ej. "$ 1,234.50".
// Los dígitos salen de StringFixed: el monto nunca pasa por float64.
func (f *Formatter) Format(amount decimal.Decimal) string {
	symbol := f.printer.Sprint(currency.Symbol(f.unit))
	return symbol + " " + f.formatAmount(amount.Round(int32(f.scale)))
}

func (f *Formatter) formatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(int32(f.scale))
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Fuera de int64 no hay agrupación del locale.
		return amount.StringFixed(int32(f.scale))
	}
	out := f.printer.Sprint(number.Decimal(n, number.Scale(0)))
	if frac != "" {
		out += f.decimal + frac
	}
	if amount.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// decimalSeparator deduce el separador decimal formateando 1.5 en el locale.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	sep := strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
	if utf8.RuneCountInString(sep) != 1 {
		return "."
	}
	return sep
}

// Precision decimales estándar de una moneda por código; def si el código no es ISO válido.
func Precision(code string, def int32) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return def
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
