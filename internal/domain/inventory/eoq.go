package inventory

import (
	"errors"
	"fmt"
	"math"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Precondiciones del EOQ; todas envuelven domain.ErrEOQUndefined.
var (
	ErrZeroDemand       = fmt.Errorf("%w: la demanda debe ser positiva", domain.ErrEOQUndefined)
	ErrZeroStorageCost  = fmt.Errorf("%w: el costo de almacenamiento debe ser positivo", domain.ErrEOQUndefined)
	ErrZeroVariableCost = fmt.Errorf("%w: el costo variable debe ser positivo", domain.ErrEOQUndefined)
)

// eoqPrecision dígitos decimales de la división 2·D·K/h antes de la raíz.
const eoqPrecision = 24

var two = decimal.NewFromInt(2)

// EOQ calcula el lote económico de pedido (servicio de dominio).
// Q = sqrt(2 * demanda * costoVariable / costoAlmacenamiento)
// El producto y la división se hacen en decimal; la raíz en float64 y se vuelve a decimal.
func EOQ(demand, variableCost, storageCost decimal.Decimal) (decimal.Decimal, error) {
	if !demand.IsPositive() {
		return decimal.Zero, ErrZeroDemand
	}
	if !storageCost.IsPositive() {
		return decimal.Zero, ErrZeroStorageCost
	}
	if !variableCost.IsPositive() {
		return decimal.Zero, ErrZeroVariableCost
	}
	q := two.Mul(demand).Mul(variableCost).DivRound(storageCost, eoqPrecision)
	root := math.Sqrt(q.InexactFloat64())
	if math.IsInf(root, 0) || math.IsNaN(root) {
		return decimal.Zero, errors.New("EOQ fuera de rango numérico")
	}
	return decimal.NewFromFloat(root), nil
}
