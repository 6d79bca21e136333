// Package simulation orquesta las simulaciones Monte Carlo de productos y centros:
// arma la rutina de cada corrida, guarda el historial y genera reportes.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
	domainsim "github.com/jhoicas/Costeo-api/internal/domain/simulation"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso de simulación.
type UseCase struct {
	productRepo repository.ProductRepository
	centerRepo  repository.CenterRepository
	runRepo     repository.SimulationRunRepository
	report      ReportGenerator
	recorder    Recorder
	cfg         config.SimulationConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. recorder y report pueden ser nil.
func NewUseCase(
	productRepo repository.ProductRepository,
	centerRepo repository.CenterRepository,
	runRepo repository.SimulationRunRepository,
	report ReportGenerator,
	recorder Recorder,
	cfg config.SimulationConfig,
	log *logger.Logger,
) *UseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		productRepo: productRepo,
		centerRepo:  centerRepo,
		runRepo:     runRepo,
		report:      report,
		recorder:    recorder,
		cfg:         cfg,
		log:         log.Named("simulation"),
		now:         time.Now,
	}
}

// SimulateProduct corre la simulación de costos de un producto.
//
// Cada corrida muestrea todos los costos del plan sobre una copia del producto y devuelve la
// métrica elegida. Si la simulación termina bien, el producto se recarga y solo los costos del
// plan se actualizan con los valores de la última corrida; los cambios hechos por otras
// operaciones durante las corridas se conservan.
//
// Retorna:
//   - domain.ErrNotFound       si el producto no existe.
//   - domain.ErrInvalidInput   si el plan, la métrica o la cantidad de corridas son inválidos.
//   - domain.ErrUnknownLedger  si el plan nombra un libro que la variante no tiene.
//   - domain.ErrSimulationRun  si una corrida falló (por ejemplo EOQ indefinido).
func (uc *UseCase) SimulateProduct(ctx context.Context, productID string, in dto.SimulateProductRequest) (*dto.SimulationRunResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	plan := PlanFromDTO(in.Costs)
	work := product.Clone()
	if err := plan.Validate(work); err != nil {
		return nil, err
	}
	metric := strings.TrimSpace(in.Metric)
	if metric == "" {
		metric = DefaultMetric(work.Kind)
	}
	if _, err := MetricValue(work, metric); err != nil && !errors.Is(err, domain.ErrEOQUndefined) {
		return nil, err
	}
	runs, err := uc.resolveRuns(in.Runs)
	if err != nil {
		return nil, err
	}
	seed := uc.resolveSeed(in.Seed)

	sim, err := domainsim.New(in.Title, runs, domainsim.WithSeed(seed))
	if err != nil {
		return nil, err
	}

	start := uc.now()
	err = sim.Simulate(func() (decimal.Decimal, error) {
		if err := plan.Apply(work, sim); err != nil {
			return decimal.Zero, err
		}
		return MetricValue(work, metric)
	})
	elapsed := uc.now().Sub(start)
	if err != nil {
		uc.recorder.RunFailed(entity.SubjectProduct, failureReason(err))
		uc.log.Warn().Err(err).Str("product_id", productID).Int("runs", runs).Int64("seed", seed).Msg("simulación de producto fallida")
		return nil, err
	}

	// Se recarga el producto para no pisar cambios hechos durante las corridas.
	current, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: producto %s eliminado durante la simulación", domain.ErrNotFound, productID)
	}
	if err := plan.Merge(current, work); err != nil {
		return nil, err
	}
	current.UpdatedAt = uc.now()
	if err := uc.productRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	run := uc.newRun(sim, entity.SubjectProduct, current.ID, current.Name, metric, seed, elapsed)
	if err := uc.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	uc.recorder.RunCompleted(entity.SubjectProduct, metric, runs, elapsed)
	uc.log.Info().
		Str("sim_id", run.ID).
		Str("product_id", current.ID).
		Str("metric", metric).
		Int("runs", runs).
		Str("mean", run.Mean.StringFixed(4)).
		Dur("elapsed", elapsed).
		Msg("simulación de producto terminada")
	return ToRunResponse(run, true), nil
}

// SimulateCenter corre la simulación del costo fijo total de un centro.
// El centro no se modifica.
func (uc *UseCase) SimulateCenter(ctx context.Context, centerID string, in dto.SimulateCenterRequest) (*dto.SimulationRunResponse, error) {
	center, err := uc.centerRepo.GetByID(ctx, centerID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, fmt.Errorf("%w: centro %s", domain.ErrNotFound, centerID)
	}
	runs, err := uc.resolveRuns(in.Runs)
	if err != nil {
		return nil, err
	}
	seed := uc.resolveSeed(in.Seed)

	sim, err := domainsim.New(in.Title, runs, domainsim.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	start := uc.now()
	err = sim.Simulate(func() (decimal.Decimal, error) {
		return center.SimulateFixedCost(sim)
	})
	elapsed := uc.now().Sub(start)
	if err != nil {
		uc.recorder.RunFailed(entity.SubjectCenter, failureReason(err))
		uc.log.Warn().Err(err).Str("center_id", centerID).Msg("simulación de centro fallida")
		return nil, err
	}

	run := uc.newRun(sim, entity.SubjectCenter, center.ID, center.Name, entity.MetricFixedCost, seed, elapsed)
	if err := uc.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	uc.recorder.RunCompleted(entity.SubjectCenter, entity.MetricFixedCost, runs, elapsed)
	uc.log.Info().
		Str("sim_id", run.ID).
		Str("center_id", center.ID).
		Int("runs", runs).
		Str("mean", run.Mean.StringFixed(4)).
		Dur("elapsed", elapsed).
		Msg("simulación de centro terminada")
	return ToRunResponse(run, true), nil
}

// GetRun obtiene una simulación registrada con sus muestras; (nil, nil) si no existe.
func (uc *UseCase) GetRun(ctx context.Context, id string) (*dto.SimulationRunResponse, error) {
	run, err := uc.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil
	}
	return ToRunResponse(run, true), nil
}

// ListRuns lista simulaciones (sin muestras). subjectID vacío lista todas.
func (uc *UseCase) ListRuns(ctx context.Context, subjectID string, limit, offset int) (*dto.SimulationRunListResponse, error) {
	runs, err := uc.runRepo.ListBySubject(ctx, subjectID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SimulationRunResponse, 0, len(runs))
	for _, r := range runs {
		items = append(items, *ToRunResponse(r, false))
	}
	return &dto.SimulationRunListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// RunReport genera el PDF de una simulación. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *UseCase) RunReport(ctx context.Context, id string) ([]byte, string, error) {
	if uc.report == nil {
		return nil, "", fmt.Errorf("reporte: generador no configurado")
	}
	run, err := uc.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if run == nil {
		return nil, "", fmt.Errorf("%w: simulación %s", domain.ErrNotFound, id)
	}
	pdfBytes, err := uc.report.GenerateRunReport(ctx, run)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("simulacion-%s.pdf", run.ID), nil
}

func (uc *UseCase) resolveRuns(runs int) (int, error) {
	if runs == 0 {
		runs = uc.cfg.DefaultRuns
	}
	if runs <= 0 {
		return 0, fmt.Errorf("%w: la cantidad de corridas debe ser positiva, llegó %d", domain.ErrInvalidInput, runs)
	}
	if uc.cfg.MaxRuns > 0 && runs > uc.cfg.MaxRuns {
		return 0, fmt.Errorf("%w: máximo %d corridas, llegó %d", domain.ErrInvalidInput, uc.cfg.MaxRuns, runs)
	}
	return runs, nil
}

func (uc *UseCase) resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	if uc.cfg.Seed != 0 {
		return uc.cfg.Seed
	}
	return uc.now().UnixNano()
}

func (uc *UseCase) newRun(sim *domainsim.Simulator, subject entity.SubjectType, subjectID, subjectName, metric string, seed int64, elapsed time.Duration) *entity.SimulationRun {
	sum := sim.Summary()
	return &entity.SimulationRun{
		ID:          uuid.New().String(),
		SubjectType: subject,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Title:       sim.Title(),
		Metric:      metric,
		Runs:        sim.Runs(),
		Seed:        seed,
		Samples:     sim.Samples(),
		Count:       sum.Count,
		Mean:        sum.Mean,
		StdDev:      sum.StdDev,
		Min:         sum.Min,
		Max:         sum.Max,
		P05:         sum.P05,
		P50:         sum.P50,
		P95:         sum.P95,
		Duration:    elapsed,
		CreatedAt:   uc.now(),
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEOQUndefined):
		return "eoq_undefined"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// PlanFromDTO convierte el plan recibido por la API.
func PlanFromDTO(in map[string]map[string]dto.CostDistributionDTO) CostPlan {
	plan := make(CostPlan, len(in))
	for ledger, costs := range in {
		entries := make(map[string]CostDistribution, len(costs))
		for name, d := range costs {
			entries[name] = CostDistribution{Mean: d.Mean, Std: d.Std, Upper: d.Upper, Lower: d.Lower}
		}
		plan[ledger] = entries
	}
	return plan
}

// ToRunResponse convierte el registro en DTO. withSamples incluye las muestras de cada corrida.
func ToRunResponse(run *entity.SimulationRun, withSamples bool) *dto.SimulationRunResponse {
	if run == nil {
		return nil
	}
	resp := &dto.SimulationRunResponse{
		ID:          run.ID,
		SubjectType: string(run.SubjectType),
		SubjectID:   run.SubjectID,
		SubjectName: run.SubjectName,
		Title:       run.Title,
		Metric:      run.Metric,
		Runs:        run.Runs,
		Seed:        run.Seed,
		Summary: dto.SimulationSummaryDTO{
			Count:  run.Count,
			Mean:   run.Mean,
			StdDev: run.StdDev,
			Min:    run.Min,
			Max:    run.Max,
			P05:    run.P05,
			P50:    run.P50,
			P95:    run.P95,
		},
		DurationMS: run.Duration.Milliseconds(),
		CreatedAt:  run.CreatedAt,
	}
	if withSamples {
		resp.Samples = append([]decimal.Decimal(nil), run.Samples...)
	}
	return resp
}
