package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SimulationRunRepository = (*SimulationRunRepo)(nil)

// SimulationRunRepo historial de simulaciones en memoria.
type SimulationRunRepo struct {
	mu   sync.RWMutex
	runs map[string]*entity.SimulationRun
}

// NewSimulationRunRepository construye el repositorio vacío.
func NewSimulationRunRepository() *SimulationRunRepo {
	return &SimulationRunRepo{runs: make(map[string]*entity.SimulationRun)}
}

// Create guarda una simulación terminada.
func (r *SimulationRunRepo) Create(_ context.Context, run *entity.SimulationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; ok {
		return fmt.Errorf("%w: simulación %s", domain.ErrDuplicate, run.ID)
	}
	r.runs[run.ID] = copyRun(run)
	return nil
}

// GetByID obtiene una simulación; (nil, nil) si no existe.
func (r *SimulationRunRepo) GetByID(_ context.Context, id string) (*entity.SimulationRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	return copyRun(run), nil
}

// ListBySubject lista simulaciones de un sujeto, más recientes primero.
func (r *SimulationRunRepo) ListBySubject(_ context.Context, subjectID string, limit, offset int) ([]*entity.SimulationRun, error) {
	r.mu.RLock()
	list := make([]*entity.SimulationRun, 0)
	for _, run := range r.runs {
		if subjectID == "" || run.SubjectID == subjectID {
			list = append(list, copyRun(run))
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), nil
}

func copyRun(run *entity.SimulationRun) *entity.SimulationRun {
	cp := *run
	cp.Samples = make([]decimal.Decimal, len(run.Samples))
	copy(cp.Samples, run.Samples)
	return &cp
}
