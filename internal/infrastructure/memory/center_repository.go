package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.CenterRepository = (*CenterRepo)(nil)

// CenterRepo implementación en memoria del puerto CenterRepository.
type CenterRepo struct {
	mu      sync.RWMutex
	centers map[string]*entity.Center
}

// NewCenterRepository construye el repositorio vacío.
func NewCenterRepository() *CenterRepo {
	return &CenterRepo{centers: make(map[string]*entity.Center)}
}

// Create guarda un centro nuevo.
func (r *CenterRepo) Create(_ context.Context, center *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[center.ID]; ok {
		return fmt.Errorf("%w: centro %s", domain.ErrDuplicate, center.ID)
	}
	r.centers[center.ID] = center.Clone()
	return nil
}

// GetByID obtiene un centro por ID; (nil, nil) si no existe.
func (r *CenterRepo) GetByID(_ context.Context, id string) (*entity.Center, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.centers[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

// Update reemplaza el centro guardado.
func (r *CenterRepo) Update(_ context.Context, center *entity.Center) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.centers[center.ID]; !ok {
		return fmt.Errorf("%w: centro %s", domain.ErrNotFound, center.ID)
	}
	r.centers[center.ID] = center.Clone()
	return nil
}

// List lista centros (más recientes primero) con paginación.
func (r *CenterRepo) List(_ context.Context, limit, offset int) ([]*entity.Center, error) {
	r.mu.RLock()
	list := make([]*entity.Center, 0, len(r.centers))
	for _, c := range r.centers {
		list = append(list, c.Clone())
	}
	r.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Name < list[j].Name
	})
	return paginate(list, limit, offset), nil
}

// Delete elimina un centro por ID.
func (r *CenterRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.centers, id)
	return nil
}
