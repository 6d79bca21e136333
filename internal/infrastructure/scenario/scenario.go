// Package scenario carga escenarios de simulación desde YAML: productos, centros,
// sus costos y los parámetros de cada simulación.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// File estructura del archivo de escenario.
type File struct {
	Products []ProductYAML `yaml:"products"`
	Centers  []CenterYAML  `yaml:"centers,omitempty"`
}

// ProductYAML producto con su simulación opcional.
type ProductYAML struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	Price      decimal.Decimal `yaml:"price,omitempty"`
	Demand     decimal.Decimal `yaml:"demand,omitempty"`
	LeadTime   decimal.Decimal `yaml:"lead_time,omitempty"`
	Inventory  decimal.Decimal `yaml:"inventory,omitempty"`
	Simulation *SimulationYAML `yaml:"simulation,omitempty"`
}

// CenterYAML centro con sus costos fijos.
type CenterYAML struct {
	Name       string          `yaml:"name"`
	Address    string          `yaml:"address,omitempty"`
	FixedCosts []CostYAML      `yaml:"fixed_costs"`
	Simulation *SimulationYAML `yaml:"simulation,omitempty"`
}

// CostYAML costo fijo.
type CostYAML struct {
	Name  string          `yaml:"name"`
	Value decimal.Decimal `yaml:"value"`
}

// SimulationYAML parámetros de una simulación.
type SimulationYAML struct {
	Title  string                                 `yaml:"title,omitempty"`
	Runs   int                                    `yaml:"runs,omitempty"`
	Seed   *int64                                 `yaml:"seed,omitempty"`
	Metric string                                 `yaml:"metric,omitempty"`
	Costs  map[string]map[string]DistributionYAML `yaml:"costs,omitempty"`
}

// DistributionYAML parámetros de la normal acotada.
type DistributionYAML struct {
	Mean  decimal.Decimal `yaml:"mean"`
	Std   decimal.Decimal `yaml:"std"`
	Upper decimal.Decimal `yaml:"upper"`
	Lower decimal.Decimal `yaml:"lower"`
}

// Load lee y valida un escenario desde path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("escenario: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodifica y valida un escenario.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: escenario: %v", domain.ErrInvalidInput, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate revisa nombres y variantes antes de crear entidades.
func (f *File) Validate() error {
	if len(f.Products) == 0 && len(f.Centers) == 0 {
		return fmt.Errorf("%w: escenario sin productos ni centros", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("%w: products[%d]: nombre vacío", domain.ErrInvalidInput, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: products[%d]: nombre repetido %q", domain.ErrDuplicate, i, name)
		}
		seen[name] = true
		if !entity.ProductKind(strings.ToLower(p.Kind)).Valid() {
			return fmt.Errorf("%w: products[%d]: tipo desconocido %q", domain.ErrInvalidInput, i, p.Kind)
		}
	}
	for i, c := range f.Centers {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: centers[%d]: nombre vacío", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

// CreateRequest convierte el producto en la entrada del caso de uso.
func (p ProductYAML) CreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:      p.Name,
		Kind:      strings.ToLower(p.Kind),
		Price:     p.Price,
		Demand:    p.Demand,
		LeadTime:  p.LeadTime,
		Inventory: p.Inventory,
	}
}

// ProductRequest convierte la simulación en la entrada del caso de uso.
func (s SimulationYAML) ProductRequest() dto.SimulateProductRequest {
	costs := make(map[string]map[string]dto.CostDistributionDTO, len(s.Costs))
	for ledger, entries := range s.Costs {
		m := make(map[string]dto.CostDistributionDTO, len(entries))
		for name, d := range entries {
			m[name] = dto.CostDistributionDTO{Mean: d.Mean, Std: d.Std, Upper: d.Upper, Lower: d.Lower}
		}
		costs[ledger] = m
	}
	return dto.SimulateProductRequest{
		Title:  s.Title,
		Runs:   s.Runs,
		Seed:   s.Seed,
		Metric: s.Metric,
		Costs:  costs,
	}
}

// CenterRequest convierte la simulación en la entrada del caso de uso de centros.
func (s SimulationYAML) CenterRequest() dto.SimulateCenterRequest {
	return dto.SimulateCenterRequest{Title: s.Title, Runs: s.Runs, Seed: s.Seed}
}
