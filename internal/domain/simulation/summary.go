package simulation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// statPrecision dígitos decimales para media y varianza.
const statPrecision = 16

// floatSafeDigits dígitos enteros que float64 representa sin desbordar.
const floatSafeDigits = 300

// Summary estadísticas de una simulación.
type Summary struct {
	Title  string
	Count  int
	Mean   decimal.Decimal
	StdDev decimal.Decimal // desviación muestral (n-1); 0 con menos de dos muestras
	Min    decimal.Decimal
	Max    decimal.Decimal
	P05    decimal.Decimal
	P50    decimal.Decimal
	P95    decimal.Decimal
}

// Empty indica si el resumen no tiene muestras.
func (s Summary) Empty() bool { return s.Count == 0 }

// Summarize calcula el resumen de una secuencia de muestras. Es una función pura.
func Summarize(title string, samples []decimal.Decimal) Summary {
	out := Summary{Title: title, Count: len(samples)}
	if len(samples) == 0 {
		return out
	}

	n := decimal.NewFromInt(int64(len(samples)))
	sum := decimal.Zero
	out.Min, out.Max = samples[0], samples[0]
	for _, v := range samples {
		sum = sum.Add(v)
		out.Min = decimal.Min(out.Min, v)
		out.Max = decimal.Max(out.Max, v)
	}
	out.Mean = sum.DivRound(n, statPrecision)

	if len(samples) > 1 {
		sq := decimal.Zero
		for _, v := range samples {
			d := v.Sub(out.Mean)
			sq = sq.Add(d.Mul(d))
		}
		variance := sq.DivRound(n.Sub(decimal.NewFromInt(1)), statPrecision)
		out.StdDev = sqrt(variance)
	}

	sorted := make([]decimal.Decimal, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	out.P05 = percentile(sorted, 5)
	out.P50 = percentile(sorted, 50)
	out.P95 = percentile(sorted, 95)
	return out
}

// sqrt raíz cuadrada de v >= 0. Valores fuera del rango de float64 se escalan por una
// potencia par de 10 antes de la raíz.
func sqrt(v decimal.Decimal) decimal.Decimal {
	if !v.IsPositive() {
		return decimal.Zero
	}
	shift := 0
	if mag := v.NumDigits() + int(v.Exponent()); mag > floatSafeDigits {
		shift = mag - mag%2
	}
	root := math.Sqrt(v.Shift(int32(-shift)).InexactFloat64())
	return decimal.NewFromFloat(root).Shift(int32(shift / 2))
}

// percentile por rango más cercano sobre muestras ordenadas.
func percentile(sorted []decimal.Decimal, p int) decimal.Decimal {
	rank := int(math.Ceil(float64(p) / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
