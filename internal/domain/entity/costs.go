package entity

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Costs es un libro de costos indexado por nombre (almacenamiento, producción o compra).
// Add reemplaza por nombre (last-write-wins); Get nunca falla.
// El valor cero es un libro vacío listo para usar.
type Costs struct {
	entries map[string]Cost
}

// NewCosts construye un libro vacío.
func NewCosts() *Costs {
	return &Costs{entries: make(map[string]Cost)}
}

// Add inserta o reemplaza el costo con el mismo nombre. No informa si hubo reemplazo.
func (l *Costs) Add(c Cost) error {
	if c.IsZero() {
		return fmt.Errorf("%w: se esperaba un Cost construido con NewCost", domain.ErrInvalidType)
	}
	if l.entries == nil {
		l.entries = make(map[string]Cost)
	}
	l.entries[c.name] = c
	return nil
}

// Get devuelve el costo con ese nombre. Si no existe devuelve un Cost en cero con ese nombre:
// la ausencia se interpreta como costo 0, por lo que un nombre mal escrito suma 0 sin error.
// Use Has para distinguir ausencia de un costo registrado en cero.
func (l *Costs) Get(name string) Cost {
	if c, ok := l.entries[name]; ok {
		return c
	}
	return Cost{name: name, value: decimal.Zero}
}

// Has indica si hay un costo registrado con ese nombre.
func (l *Costs) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Len devuelve la cantidad de costos distintos.
func (l *Costs) Len() int { return len(l.entries) }

// Total suma exacta de todos los costos actuales (0 si está vacío). Se recalcula en cada llamada.
func (l *Costs) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.entries {
		total = total.Add(c.value)
	}
	return total
}

// Names devuelve los nombres ordenados alfabéticamente.
func (l *Costs) Names() []string {
	names := make([]string, 0, len(l.entries))
	for n := range l.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Entries devuelve los costos ordenados por nombre.
func (l *Costs) Entries() []Cost {
	out := make([]Cost, 0, len(l.entries))
	for _, n := range l.Names() {
		out = append(out, l.entries[n])
	}
	return out
}

// Clone devuelve una copia independiente del libro.
func (l *Costs) Clone() *Costs {
	cp := &Costs{entries: make(map[string]Cost, len(l.entries))}
	for n, c := range l.entries {
		cp.entries[n] = c
	}
	return cp
}

func (l *Costs) String() string {
	return fmt.Sprintf("<Costs: Total = %s>", l.Total())
}
