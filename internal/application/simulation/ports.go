package simulation

import (
	"context"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Recorder registra métricas operativas de las simulaciones.
type Recorder interface {
	RunCompleted(subject entity.SubjectType, metric string, runs int, elapsed time.Duration)
	RunFailed(subject entity.SubjectType, reason string)
}

// ReportGenerator genera el reporte PDF de una simulación registrada.
type ReportGenerator interface {
	GenerateRunReport(ctx context.Context, run *entity.SimulationRun) ([]byte, error)
}

// NopRecorder descarta las métricas.
type NopRecorder struct{}

func (NopRecorder) RunCompleted(entity.SubjectType, string, int, time.Duration) {}
func (NopRecorder) RunFailed(entity.SubjectType, string)                         {}
