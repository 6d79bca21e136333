// Package simulation implementa el simulador Monte Carlo usado para proyectar costos:
// muestreo normal acotado, ejecución repetida de una rutina de acumulación de costos
// y resumen estadístico de los resultados.
//
// El simulador es sincrónico y no es seguro para uso concurrente: cada instancia tiene
// su propio generador aleatorio y su propio historial de muestras.
package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var _ entity.Sampler = (*Simulator)(nil)

// DefaultTitle se usa cuando el título llega vacío.
const DefaultTitle = "Simulación"

// State estado del simulador.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// RunFunc rutina sin argumentos que acumula costos y devuelve la cantidad de interés.
type RunFunc func() (decimal.Decimal, error)

// RunError envuelve el error de la corrida que abortó la simulación.
// errors.Is(err, original) y errors.Is(err, domain.ErrSimulationRun) son verdaderos.
type RunError struct {
	Run int // corrida 1-based que falló
	Err error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: corrida %d: %v", domain.ErrSimulationRun, e.Run, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrSimulationRun).
func (e *RunError) Is(target error) bool { return target == domain.ErrSimulationRun }

// Option configura el simulador.
type Option func(*Simulator)

// WithSeed fija la semilla del generador (simulaciones reproducibles).
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithSource inyecta la fuente aleatoria.
func WithSource(src rand.Source) Option {
	return func(s *Simulator) {
		if src != nil {
			s.rng = rand.New(src)
		}
	}
}

// Simulator ejecuta una rutina runs veces y guarda el resultado de cada corrida.
type Simulator struct {
	title   string
	runs    int
	rng     *rand.Rand
	state   State
	samples []decimal.Decimal
}

// New construye un simulador. runs debe ser positivo.
// Sin WithSeed/WithSource la semilla se toma del reloj.
func New(title string, runs int, opts ...Option) (*Simulator, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de corridas debe ser positiva, llegó %d", domain.ErrInvalidInput, runs)
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	s := &Simulator{title: title, runs: runs}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// Title título de la simulación.
func (s *Simulator) Title() string { return s.title }

// Runs cantidad de corridas configuradas.
func (s *Simulator) Runs() int { return s.runs }

// State estado actual.
func (s *Simulator) State() State { return s.state }

// Samples copia de las muestras de la última simulación, en orden de corrida.
func (s *Simulator) Samples() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.samples))
	copy(out, s.samples)
	return out
}

// Normal extrae una muestra de N(mean, std) y la recorta (clamp) a [lower, upper].
// Con std == 0 devuelve mean (recortada a los límites). lower > upper o std < 0 es un error.
func (s *Simulator) Normal(mean, std, lower, upper decimal.Decimal) (decimal.Decimal, error) {
	if lower.GreaterThan(upper) {
		return decimal.Zero, fmt.Errorf("%w: límite inferior %s mayor que el superior %s", domain.ErrInvalidInput, lower, upper)
	}
	if std.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: desviación estándar negativa %s", domain.ErrInvalidInput, std)
	}
	if std.IsZero() {
		return clamp(mean, lower, upper), nil
	}
	x := mean.InexactFloat64() + std.InexactFloat64()*s.rng.NormFloat64()
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return decimal.Zero, fmt.Errorf("%w: muestra fuera de rango numérico (media %s, desviación %s)", domain.ErrInvalidInput, mean, std)
	}
	return clamp(decimal.NewFromFloat(x), lower, upper), nil
}

func clamp(v, lower, upper decimal.Decimal) decimal.Decimal {
	if v.LessThan(lower) {
		return lower
	}
	if v.GreaterThan(upper) {
		return upper
	}
	return v
}

// Simulate ejecuta fn exactamente Runs veces, en secuencia, y guarda cada resultado.
// Reinicia las muestras previas. El primer error aborta las corridas restantes, descarta
// las muestras parciales y se devuelve como *RunError.
func (s *Simulator) Simulate(fn RunFunc) error {
	if fn == nil {
		return errors.New("simulación: rutina nula")
	}
	s.state = StateRunning
	s.samples = make([]decimal.Decimal, 0, s.runs)
	for i := 0; i < s.runs; i++ {
		v, err := fn()
		if err != nil {
			s.samples = nil
			s.state = StateIdle
			return &RunError{Run: i + 1, Err: err}
		}
		s.samples = append(s.samples, v)
	}
	s.state = StateComplete
	return nil
}

// Summary resumen estadístico de las muestras actuales.
// Antes de una simulación completa devuelve un resumen vacío (Count == 0).
func (s *Simulator) Summary() Summary {
	return Summarize(s.title, s.samples)
}
