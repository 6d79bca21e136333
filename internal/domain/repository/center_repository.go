package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// CenterRepository define el puerto de persistencia para Center (DIP).
type CenterRepository interface {
	Create(ctx context.Context, center *entity.Center) error
	GetByID(ctx context.Context, id string) (*entity.Center, error)
	Update(ctx context.Context, center *entity.Center) error
	List(ctx context.Context, limit, offset int) ([]*entity.Center, error)
	Delete(ctx context.Context, id string) error
}
