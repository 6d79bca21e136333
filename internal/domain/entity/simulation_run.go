package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubjectType sobre qué entidad se corrió la simulación.
type SubjectType string

const (
	SubjectProduct SubjectType = "product"
	SubjectCenter  SubjectType = "center"
)

// Métricas que puede devolver cada corrida.
const (
	MetricVariableCost = "variable_cost"
	MetricStorageCost  = "storage_cost"
	MetricEOQ          = "eoq"
	MetricFixedCost    = "fixed_cost"
)

// SimulationRun registro de una simulación terminada: parámetros, muestras y resumen.
// Las muestras son el historial real; los libros del producto solo guardan la última corrida.
type SimulationRun struct {
	ID          string
	SubjectType SubjectType
	SubjectID   string
	SubjectName string
	Title       string
	Metric      string
	Runs        int
	Seed        int64
	Samples     []decimal.Decimal
	Count       int
	Mean        decimal.Decimal
	StdDev      decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	P05         decimal.Decimal
	P50         decimal.Decimal
	P95         decimal.Decimal
	Duration    time.Duration
	CreatedAt   time.Time
}
