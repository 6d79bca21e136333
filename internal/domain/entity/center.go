package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Sampler produce una muestra normal acotada a [lower, upper].
// Lo implementa *simulation.Simulator.
type Sampler interface {
	Normal(mean, std, lower, upper decimal.Decimal) (decimal.Decimal, error)
}

// Dispersión usada al simular costos fijos: std = 10% del valor, límites 50%..150%.
var (
	fixedCostStdFactor   = decimal.RequireFromString("0.1")
	fixedCostLowerFactor = decimal.RequireFromString("0.5")
	fixedCostUpperFactor = decimal.RequireFromString("1.5")
)

// Center representa un centro físico (planta, bodega o sucursal) con sus costos fijos.
// Los costos se agregan en orden y no se deduplican por nombre.
type Center struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time

	fixedCosts []Cost
}

// NewCenter construye un centro; el nombre es obligatorio.
func NewCenter(name, address string) (*Center, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: nombre del centro vacío", domain.ErrInvalidInput)
	}
	return &Center{Name: name, Address: address}, nil
}

// AddCost agrega un costo fijo al final de la lista.
func (c *Center) AddCost(cost Cost) {
	c.fixedCosts = append(c.fixedCosts, cost)
}

// FixedCosts copia de los costos fijos en orden de inserción.
func (c *Center) FixedCosts() []Cost {
	out := make([]Cost, len(c.fixedCosts))
	copy(out, c.fixedCosts)
	return out
}

// TotalFixedCost suma de todos los costos fijos, incluidos los repetidos por nombre.
func (c *Center) TotalFixedCost() decimal.Decimal {
	total := decimal.Zero
	for _, cost := range c.fixedCosts {
		total = total.Add(cost.value)
	}
	return total
}

// SimulateFixedCost devuelve una realización del costo fijo total: una muestra por costo
// con media = valor, std = 0.1·valor y límites [0.5·valor, 1.5·valor]. No modifica el centro.
func (c *Center) SimulateFixedCost(s Sampler) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, cost := range c.fixedCosts {
		v := cost.value
		draw, err := s.Normal(v, v.Mul(fixedCostStdFactor), v.Mul(fixedCostLowerFactor), v.Mul(fixedCostUpperFactor))
		if err != nil {
			return decimal.Zero, fmt.Errorf("simular costo fijo %q: %w", cost.name, err)
		}
		total = total.Add(draw)
	}
	return total, nil
}

// Clone copia del centro con su propia lista de costos.
func (c *Center) Clone() *Center {
	cp := *c
	cp.fixedCosts = c.FixedCosts()
	return &cp
}

func (c *Center) String() string {
	return fmt.Sprintf("Center(Name: %s, Address: %s, Total Fixed Cost: %s)", c.Name, c.Address, c.TotalFixedCost())
}
