package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostDistributionDTO parámetros de la normal acotada de un costo.
type CostDistributionDTO struct {
	Mean  decimal.Decimal `json:"mean"`
	Std   decimal.Decimal `json:"std"`
	Upper decimal.Decimal `json:"upper"`
	Lower decimal.Decimal `json:"lower"`
}

// SimulateProductRequest entrada para simular los costos de un producto.
// Costs: libro ("storage_costs", "production_costs", "purchase_costs") → nombre de costo → distribución.
// Metric: "variable_cost" | "storage_cost" | "eoq"; vacío usa el valor por defecto de la variante.
type SimulateProductRequest struct {
	Title  string                                    `json:"title"`
	Runs   int                                       `json:"runs"`
	Seed   *int64                                    `json:"seed"`
	Metric string                                    `json:"metric"`
	Costs  map[string]map[string]CostDistributionDTO `json:"costs"`
}

// SimulateCenterRequest entrada para simular el costo fijo total de un centro.
type SimulateCenterRequest struct {
	Title string `json:"title"`
	Runs  int    `json:"runs"`
	Seed  *int64 `json:"seed"`
}

// SimulationSummaryDTO estadísticas de la simulación.
type SimulationSummaryDTO struct {
	Count  int             `json:"count"`
	Mean   decimal.Decimal `json:"mean"`
	StdDev decimal.Decimal `json:"std_dev"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	P05    decimal.Decimal `json:"p05"`
	P50    decimal.Decimal `json:"p50"`
	P95    decimal.Decimal `json:"p95"`
}

// SimulationRunResponse salida de una simulación registrada.
type SimulationRunResponse struct {
	ID          string               `json:"id"`
	SubjectType string               `json:"subject_type"`
	SubjectID   string               `json:"subject_id"`
	SubjectName string               `json:"subject_name"`
	Title       string               `json:"title"`
	Metric      string               `json:"metric"`
	Runs        int                  `json:"runs"`
	Seed        int64                `json:"seed"`
	Summary     SimulationSummaryDTO `json:"summary"`
	Samples     []decimal.Decimal    `json:"samples,omitempty"`
	DurationMS  int64                `json:"duration_ms"`
	CreatedAt   time.Time            `json:"created_at"`
}

// SimulationRunListResponse lista paginada de simulaciones.
type SimulationRunListResponse struct {
	Items []SimulationRunResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
