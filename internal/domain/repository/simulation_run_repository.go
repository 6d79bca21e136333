package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// SimulationRunRepository guarda el historial de simulaciones.
type SimulationRunRepository interface {
	Create(ctx context.Context, run *entity.SimulationRun) error
	GetByID(ctx context.Context, id string) (*entity.SimulationRun, error)
	// ListBySubject lista las simulaciones de un producto o centro, más recientes primero.
	// subjectID vacío lista todas.
	ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]*entity.SimulationRun, error)
}
