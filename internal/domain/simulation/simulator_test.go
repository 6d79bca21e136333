package simulation_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/simulation"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newSim(t *testing.T, runs int) *simulation.Simulator {
	t.Helper()
	s, err := simulation.New("test", runs, simulation.WithSeed(42))
	require.NoError(t, err)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_CorridasNoPositivas(t *testing.T) {
	for _, runs := range []int{0, -1} {
		_, err := simulation.New("x", runs)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestNew_EstadoInicial(t *testing.T) {
	s, err := simulation.New("", 3)
	require.NoError(t, err)
	assert.Equal(t, simulation.DefaultTitle, s.Title())
	assert.Equal(t, 3, s.Runs())
	assert.Equal(t, simulation.StateIdle, s.State())
	assert.Empty(t, s.Samples())
}

// ──────────────────────────────────────────────────────────────────────────────
// Normal
// ──────────────────────────────────────────────────────────────────────────────

func TestNormal_StdCeroDevuelveMedia(t *testing.T) {
	s := newSim(t, 1)
	for _, mean := range []string{"0", "2", "7.125", "0.1"} {
		v, err := s.Normal(d(mean), decimal.Zero, d("0"), d("10"))
		require.NoError(t, err)
		assert.True(t, d(mean).Equal(v), "esperado %s, llegó %s", mean, v)
	}
}

func TestNormal_NuncaFueraDeLimites(t *testing.T) {
	s := newSim(t, 1)
	params := []struct{ mean, std, lower, upper string }{
		{"2", "1", "0", "5"},
		{"7", "2", "5", "10"},
		{"0.1", "0.1", "0", "0.5"},
		{"100", "1000", "99", "101"},
		{"-50", "1", "0", "1"}, // media fuera del intervalo
		{"3", "0", "4", "6"},   // std cero con media fuera del intervalo
		{"1", "5", "1", "1"},   // intervalo degenerado
	}
	for _, p := range params {
		for i := 0; i < 500; i++ {
			v, err := s.Normal(d(p.mean), d(p.std), d(p.lower), d(p.upper))
			require.NoError(t, err)
			require.False(t, v.LessThan(d(p.lower)), "%s < %s", v, p.lower)
			require.False(t, v.GreaterThan(d(p.upper)), "%s > %s", v, p.upper)
		}
	}
}

func TestNormal_ErroresDeConfiguracion(t *testing.T) {
	s := newSim(t, 1)
	_, err := s.Normal(d("1"), d("1"), d("5"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "lower > upper")
	_, err = s.Normal(d("1"), d("-1"), d("0"), d("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "std negativa")
}

func TestNormal_FueraDeRangoFloat(t *testing.T) {
	s := newSim(t, 1)
	_, err := s.Normal(d("1e400"), d("1"), d("0"), d("1e500"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.Normal(d("1"), d("1e400"), d("0"), d("1e500"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormal_ReproducibleConSemilla(t *testing.T) {
	a, err := simulation.New("a", 1, simulation.WithSeed(7))
	require.NoError(t, err)
	b, err := simulation.New("b", 1, simulation.WithSource(rand.NewSource(7)))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		va, err := a.Normal(d("10"), d("3"), d("0"), d("20"))
		require.NoError(t, err)
		vb, err := b.Normal(d("10"), d("3"), d("0"), d("20"))
		require.NoError(t, err)
		assert.True(t, va.Equal(vb))
	}
}

func TestNormal_MediaMuestralCercanaALaMedia(t *testing.T) {
	s := newSim(t, 1)
	sum := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		v, err := s.Normal(d("100"), d("5"), d("0"), d("200"))
		require.NoError(t, err)
		sum += v.InexactFloat64()
	}
	assert.InDelta(t, 100, sum/n, 0.5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulate / Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_InvocaExactamenteNVeces(t *testing.T) {
	for _, runs := range []int{1, 5, 137} {
		s := newSim(t, runs)
		calls := 0
		err := s.Simulate(func() (decimal.Decimal, error) {
			calls++
			return decimal.NewFromInt(int64(calls)), nil
		})
		require.NoError(t, err)
		assert.Equal(t, runs, calls)
		assert.Equal(t, runs, s.Summary().Count)
		assert.Equal(t, simulation.StateComplete, s.State())
		assert.True(t, decimal.NewFromInt(1).Equal(s.Samples()[0]), "las muestras respetan el orden de corrida")
	}
}

// Escenario 4: 5 corridas con valor constante 5 → media, mínimo y máximo 5.
func TestSimulate_ValorConstante(t *testing.T) {
	s := newSim(t, 5)
	require.NoError(t, s.Simulate(func() (decimal.Decimal, error) { return decimal.NewFromInt(5), nil }))

	sum := s.Summary()
	assert.Equal(t, 5, sum.Count)
	assert.True(t, decimal.NewFromInt(5).Equal(sum.Mean), "media: %s", sum.Mean)
	assert.True(t, decimal.NewFromInt(5).Equal(sum.Min))
	assert.True(t, decimal.NewFromInt(5).Equal(sum.Max))
	assert.True(t, sum.StdDev.IsZero())
	assert.Equal(t, "test", sum.Title)
}

func TestSimulate_ErrorAbortaYSePropaga(t *testing.T) {
	s := newSim(t, 10)
	boom := errors.New("ledger roto")
	calls := 0
	err := s.Simulate(func() (decimal.Decimal, error) {
		calls++
		if calls == 3 {
			return decimal.Zero, boom
		}
		return decimal.NewFromInt(1), nil
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "las corridas restantes no se ejecutan")
	assert.ErrorIs(t, err, boom, "el error original es visible")
	assert.ErrorIs(t, err, domain.ErrSimulationRun)

	var runErr *simulation.RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, 3, runErr.Run)

	assert.True(t, s.Summary().Empty(), "sin resultados parciales")
	assert.Equal(t, simulation.StateIdle, s.State())
}

func TestSimulate_ReiniciaMuestras(t *testing.T) {
	s := newSim(t, 4)
	require.NoError(t, s.Simulate(func() (decimal.Decimal, error) { return decimal.NewFromInt(1), nil }))
	require.NoError(t, s.Simulate(func() (decimal.Decimal, error) { return decimal.NewFromInt(3), nil }))
	sum := s.Summary()
	assert.Equal(t, 4, sum.Count)
	assert.True(t, decimal.NewFromInt(3).Equal(sum.Mean))
}

func TestSimulate_RutinaNula(t *testing.T) {
	s := newSim(t, 1)
	assert.Error(t, s.Simulate(nil))
}

func TestSummary_AntesDeSimularEsVacio(t *testing.T) {
	s := newSim(t, 3)
	sum := s.Summary()
	assert.True(t, sum.Empty())
	assert.True(t, sum.Mean.IsZero())
	assert.True(t, sum.StdDev.IsZero())
	assert.True(t, sum.Min.IsZero())
	assert.True(t, sum.Max.IsZero())
}

func TestSummarize_Estadisticas(t *testing.T) {
	samples := []decimal.Decimal{d("2"), d("4"), d("4"), d("4"), d("5"), d("5"), d("7"), d("9")}
	sum := simulation.Summarize("x", samples)
	assert.Equal(t, 8, sum.Count)
	assert.True(t, d("5").Equal(sum.Mean))
	assert.True(t, d("2").Equal(sum.Min))
	assert.True(t, d("9").Equal(sum.Max))
	// varianza muestral = 32/7
	assert.InDelta(t, 2.138089935, sum.StdDev.InexactFloat64(), 1e-8)
	assert.True(t, d("2").Equal(sum.P05))
	assert.True(t, d("4").Equal(sum.P50))
	assert.True(t, d("9").Equal(sum.P95))
}

func TestSummarize_UnaMuestra(t *testing.T) {
	sum := simulation.Summarize("x", []decimal.Decimal{d("3.5")})
	assert.Equal(t, 1, sum.Count)
	assert.True(t, d("3.5").Equal(sum.Mean))
	assert.True(t, sum.StdDev.IsZero())
	assert.True(t, d("3.5").Equal(sum.P50))
}

func TestSummarize_VarianzaFueraDeRangoFloat(t *testing.T) {
	var sum simulation.Summary
	require.NotPanics(t, func() {
		sum = simulation.Summarize("x", []decimal.Decimal{d("0"), d("1e200")})
	})
	assert.True(t, d("5e199").Equal(sum.Mean))
	// desviación = 1e200 / sqrt(2)
	ratio := sum.StdDev.Div(d("1e199")).InexactFloat64()
	assert.InDelta(t, 7.0710678, ratio, 1e-6)
}

// ──────────────────────────────────────────────────────────────────────────────
// Integración con el dominio
// ──────────────────────────────────────────────────────────────────────────────

// Las corridas sobrescriben el libro por nombre: el libro refleja solo la última corrida,
// el historial verdadero son las muestras del simulador.
func TestSimulate_LibroReflejaUltimaCorrida(t *testing.T) {
	p, err := entity.NewProducedProduct("Product I", entity.ProductAttrs{Inventory: 100})
	require.NoError(t, err)
	s := newSim(t, 10)

	err = s.Simulate(func() (decimal.Decimal, error) {
		v, err := s.Normal(d("2"), d("1"), d("0"), d("5"))
		if err != nil {
			return decimal.Zero, err
		}
		c, err := entity.NewCost("Energy Costs", v)
		if err != nil {
			return decimal.Zero, err
		}
		if err := p.ProductionCosts().Add(c); err != nil {
			return decimal.Zero, err
		}
		return p.TotalVariableCost(), nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, p.ProductionCosts().Len())
	samples := s.Samples()
	require.Len(t, samples, 10)
	assert.True(t, samples[9].Equal(p.TotalVariableCost()))
}

func TestCenter_SimulateFixedCostConSimulador(t *testing.T) {
	c, err := entity.NewCenter("Planta", "")
	require.NoError(t, err)
	c.AddCost(entity.MustCost("Rent", 1000))
	c.AddCost(entity.MustCost("Power", 200))

	s := newSim(t, 200)
	require.NoError(t, s.Simulate(func() (decimal.Decimal, error) { return c.SimulateFixedCost(s) }))
	sum := s.Summary()
	assert.False(t, sum.Min.LessThan(d("600")))
	assert.False(t, sum.Max.GreaterThan(d("1800")))
	assert.InDelta(t, 1200, sum.Mean.InexactFloat64(), 30)
}
