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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del puerto ProductRepository.
// Guarda y devuelve copias, así cada caller trabaja sobre su propio producto.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*entity.Product)}
}

// Create guarda un producto nuevo; ID y nombre deben ser únicos.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, product.ID)
	}
	for _, p := range r.products {
		if p.Name == product.Name {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, product.Name)
		}
	}
	r.products[product.ID] = product.Clone()
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// GetByName obtiene un producto por nombre; (nil, nil) si no existe.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.Name == name {
			return p.Clone(), nil
		}
	}
	return nil, nil
}

// Update reemplaza el producto guardado.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	r.products[product.ID] = product.Clone()
	return nil
}

// List lista productos por fecha de creación (más recientes primero) con paginación.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p.Clone())
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

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

// paginate aplica limit/offset; limit <= 0 devuelve todo desde offset.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
