package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Cost representa un componente de costo con nombre (energía, mano de obra, bodegaje...).
// Es inmutable: solo se construye con NewCost y se copia por valor.
type Cost struct {
	name  string
	value decimal.Decimal
}

// NewCost valida el nombre (no vacío, se recortan espacios) y convierte value a decimal exacto.
// value acepta decimal.Decimal, enteros, flotantes, json.Number y strings numéricos.
func NewCost(name string, value any) (Cost, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Cost{}, fmt.Errorf("%w: nombre de costo vacío", domain.ErrInvalidInput)
	}
	v, err := ToDecimal(value)
	if err != nil {
		return Cost{}, fmt.Errorf("costo %q: %w", n, err)
	}
	if v.IsNegative() {
		return Cost{}, fmt.Errorf("%w: el costo %q no puede ser negativo: %s", domain.ErrInvalidInput, n, v)
	}
	return Cost{name: n, value: v}, nil
}

// MustCost es como NewCost pero hace panic si la entrada es inválida. Útil para literales.
func MustCost(name string, value any) Cost {
	c, err := NewCost(name, value)
	if err != nil {
		panic(err)
	}
	return c
}

// Name devuelve el nombre del costo.
func (c Cost) Name() string { return c.name }

// Value devuelve el monto del costo (siempre >= 0).
func (c Cost) Value() decimal.Decimal { return c.value }

// IsZero indica si el Cost no fue construido con NewCost.
func (c Cost) IsZero() bool { return c.name == "" }

func (c Cost) String() string {
	return fmt.Sprintf("<Cost: %s, Value: %s>", c.name, c.value)
}

// MaxExponent límite del exponente (y de los dígitos) de un valor decimal aceptado.
const MaxExponent = 1000

// ToDecimal convierte números y strings numéricos a decimal exacto.
// Los flotantes se convierten por su representación decimal más corta (0.1 -> "0.1").
// Valores con exponente o cantidad de dígitos mayor a MaxExponent son inválidos.
func ToDecimal(value any) (decimal.Decimal, error) {
	d, err := toDecimal(value)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	if err := CheckMagnitude(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// CheckMagnitude rechaza valores cuyo exponente o cantidad de dígitos supera MaxExponent.
func CheckMagnitude(d decimal.Decimal) error {
	if e := d.Exponent(); e > MaxExponent || e < -MaxExponent {
		return fmt.Errorf("%w: exponente %d fuera de rango", domain.ErrInvalidInput, e)
	}
	if n := d.NumDigits(); n > MaxExponent {
		return fmt.Errorf("%w: %d dígitos, máximo %d", domain.ErrInvalidInput, n, MaxExponent)
	}
	return nil
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: decimal nulo", domain.ErrInvalidType)
		}
		return *v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return fromUint(uint64(v)), nil
	case uint16:
		return fromUint(uint64(v)), nil
	case uint32:
		return fromUint(uint64(v)), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		return fromString(v.String())
	case string:
		return fromString(v)
	default:
		return decimal.Zero, fmt.Errorf("%w: se esperaba número o string numérico, llegó %T", domain.ErrInvalidType, value)
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: valor no finito %v", domain.ErrInvalidInput, f)
	}
	return decimal.NewFromFloat(f), nil
}

func fromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q no es un número", domain.ErrInvalidInput, s)
	}
	return d, nil
}
