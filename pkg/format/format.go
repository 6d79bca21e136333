// Package format da formato local a montos decimales para reportes y salida de consola.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Printer formatea números según el idioma configurado ("es", "en-US", ...).
type Printer struct {
	p *message.Printer
}

// New construye un Printer; un tag inválido o vacío usa español.
func New(lang string) *Printer {
	tag := language.Spanish
	if lang != "" {
		if t, err := language.Parse(lang); err == nil {
			tag = t
		}
	}
	return &Printer{p: message.NewPrinter(tag)}
}

// Decimal formatea d con separadores de miles y places decimales fijos.
func (p *Printer) Decimal(d decimal.Decimal, places int) string {
	f := d.Round(int32(places)).InexactFloat64()
	return p.p.Sprint(number.Decimal(f, number.Scale(places)))
}

// Int formatea un entero con separadores de miles.
func (p *Printer) Int(n int) string {
	return p.p.Sprint(number.Decimal(n))
}
