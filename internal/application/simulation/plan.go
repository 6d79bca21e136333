package simulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CostDistribution parámetros de la normal acotada con la que se muestrea un costo.
type CostDistribution struct {
	Mean  decimal.Decimal
	Std   decimal.Decimal
	Upper decimal.Decimal
	Lower decimal.Decimal
}

// Validate revisa que la distribución pueda producir un costo válido.
func (d CostDistribution) Validate() error {
	for _, v := range []decimal.Decimal{d.Mean, d.Std, d.Lower, d.Upper} {
		if err := entity.CheckMagnitude(v); err != nil {
			return err
		}
	}
	if d.Std.IsNegative() {
		return fmt.Errorf("%w: std negativo %s", domain.ErrInvalidInput, d.Std)
	}
	if d.Lower.GreaterThan(d.Upper) {
		return fmt.Errorf("%w: lower %s mayor que upper %s", domain.ErrInvalidInput, d.Lower, d.Upper)
	}
	if d.Lower.IsNegative() {
		return fmt.Errorf("%w: lower negativo %s", domain.ErrInvalidInput, d.Lower)
	}
	for _, v := range []decimal.Decimal{d.Mean, d.Std} {
		if math.IsInf(v.InexactFloat64(), 0) {
			return fmt.Errorf("%w: %s fuera de rango numérico", domain.ErrInvalidInput, v)
		}
	}
	return nil
}

// CostPlan libro → nombre de costo → distribución.
type CostPlan map[string]map[string]CostDistribution

// Validate comprueba que cada libro exista en el producto, que cada costo tenga nombre
// y que cada distribución sea válida.
// Se ejecuta antes de la primera corrida.
func (p CostPlan) Validate(product *entity.Product) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: el plan de costos está vacío", domain.ErrInvalidInput)
	}
	for _, ledger := range sortedKeys(p) {
		if _, err := product.Ledger(ledger); err != nil {
			return err
		}
		for _, name := range sortedKeys(p[ledger]) {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("%w: %s: nombre de costo vacío", domain.ErrInvalidInput, ledger)
			}
			if err := p[ledger][name].Validate(); err != nil {
				return fmt.Errorf("%s/%s: %w", ledger, name, err)
			}
		}
	}
	return nil
}

// Apply muestrea cada costo del plan y lo registra en el libro correspondiente.
// Libros y nombres se recorren en orden para que una semilla reproduzca la corrida.
func (p CostPlan) Apply(product *entity.Product, s entity.Sampler) error {
	for _, ledger := range sortedKeys(p) {
		costs, err := product.Ledger(ledger)
		if err != nil {
			return err
		}
		for _, name := range sortedKeys(p[ledger]) {
			dist := p[ledger][name]
			v, err := s.Normal(dist.Mean, dist.Std, dist.Lower, dist.Upper)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", ledger, name, err)
			}
			cost, err := entity.NewCost(name, v)
			if err != nil {
				return err
			}
			if err := costs.Add(cost); err != nil {
				return err
			}
		}
	}
	return nil
}

// Merge copia en dst los costos del plan ya registrados en src. Los demás costos
// y atributos de dst no se tocan.
func (p CostPlan) Merge(dst, src *entity.Product) error {
	for _, ledger := range sortedKeys(p) {
		from, err := src.Ledger(ledger)
		if err != nil {
			return err
		}
		to, err := dst.Ledger(ledger)
		if err != nil {
			return err
		}
		for _, name := range sortedKeys(p[ledger]) {
			if err := to.Add(from.Get(strings.TrimSpace(name))); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefaultMetric métrica por defecto según la variante: costo variable para
// productos fabricados y costo de almacenamiento para comprados.
func DefaultMetric(kind entity.ProductKind) string {
	if kind == entity.KindProduced {
		return entity.MetricVariableCost
	}
	return entity.MetricStorageCost
}

// MetricValue evalúa la métrica sobre el estado actual del producto.
func MetricValue(product *entity.Product, metric string) (decimal.Decimal, error) {
	switch metric {
	case entity.MetricVariableCost:
		return product.TotalVariableCost(), nil
	case entity.MetricStorageCost:
		return product.TotalStorageCost(), nil
	case entity.MetricEOQ:
		return product.OptimumInventoryLevel()
	default:
		return decimal.Zero, fmt.Errorf("%w: métrica desconocida %q", domain.ErrInvalidInput, metric)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
