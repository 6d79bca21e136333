package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// CenterUseCase casos de uso para centros físicos y sus costos fijos.
type CenterUseCase struct {
	repo repository.CenterRepository
}

// NewCenterUseCase construye el caso de uso.
func NewCenterUseCase(repo repository.CenterRepository) *CenterUseCase {
	return &CenterUseCase{repo: repo}
}

// Create crea un nuevo centro sin costos.
func (uc *CenterUseCase) Create(ctx context.Context, in dto.CreateCenterRequest) (*dto.CenterResponse, error) {
	center, err := entity.NewCenter(in.Name, in.Address)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	center.ID = uuid.New().String()
	center.CreatedAt = now
	center.UpdatedAt = now
	if err := uc.repo.Create(ctx, center); err != nil {
		return nil, err
	}
	return ToCenterResponse(center), nil
}

// GetByID obtiene un centro por ID; (nil, nil) si no existe.
func (uc *CenterUseCase) GetByID(ctx context.Context, id string) (*dto.CenterResponse, error) {
	center, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, nil
	}
	return ToCenterResponse(center), nil
}

// List lista centros con paginación.
func (uc *CenterUseCase) List(ctx context.Context, limit, offset int) (*dto.CenterListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CenterResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCenterResponse(c))
	}
	return &dto.CenterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AddFixedCost agrega un costo fijo al centro (se acumula aunque el nombre se repita).
func (uc *CenterUseCase) AddFixedCost(ctx context.Context, id string, in dto.AddFixedCostRequest) (*dto.CenterResponse, error) {
	center, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, fmt.Errorf("%w: centro %s", domain.ErrNotFound, id)
	}
	cost, err := entity.NewCost(in.Name, in.Value)
	if err != nil {
		return nil, err
	}
	center.AddCost(cost)
	center.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, center); err != nil {
		return nil, err
	}
	return ToCenterResponse(center), nil
}

// Delete elimina un centro por ID. domain.ErrNotFound si no existe.
func (uc *CenterUseCase) Delete(ctx context.Context, id string) error {
	center, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if center == nil {
		return fmt.Errorf("%w: centro %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

// ToCenterResponse convierte la entidad en DTO.
func ToCenterResponse(c *entity.Center) *dto.CenterResponse {
	if c == nil {
		return nil
	}
	return &dto.CenterResponse{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		FixedCosts:     toCostResponses(c.FixedCosts()),
		TotalFixedCost: c.TotalFixedCost(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
