// simulate corre un escenario de simulación Monte Carlo sin levantar la API.
//
// Uso: go run ./cmd/simulate [--scenario escenario.yaml] [--seed 42] [--runs 100] [--report-dir ./reportes]
// Sin --scenario corre el escenario de demostración (un producto fabricado y uno comprado).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/scenario"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/format"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

type options struct {
	scenario  string
	seed      int64
	runs      int
	reportDir string
	lang      string
	logLevel  string
	logOut    io.Writer // nil = stderr
}

func main() {
	var opts options
	pflag.StringVarP(&opts.scenario, "scenario", "s", "", "archivo YAML del escenario (vacío = demo)")
	pflag.Int64Var(&opts.seed, "seed", 0, "semilla para todas las simulaciones (0 = la del escenario o el reloj)")
	pflag.IntVarP(&opts.runs, "runs", "n", 0, "corridas por simulación (0 = las del escenario)")
	pflag.StringVar(&opts.reportDir, "report-dir", "", "directorio donde escribir el PDF de cada simulación")
	pflag.StringVar(&opts.lang, "lang", "es", "idioma del formato numérico")
	pflag.StringVar(&opts.logLevel, "log-level", "warn", "nivel de log")
	pflag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	logOut := opts.logOut
	if logOut == nil {
		logOut = os.Stderr
	}
	log := logger.New(logger.Config{Env: "development", Level: opts.logLevel, Out: logOut})

	file := scenario.Demo()
	if opts.scenario != "" {
		var err error
		if file, err = scenario.Load(opts.scenario); err != nil {
			return err
		}
	}

	simCfg := config.SimulationConfig{DefaultRuns: 1000, MaxRuns: 1_000_000}
	if cfg, err := config.Load(); err != nil {
		log.Warn().Err(err).
			Int("default_runs", simCfg.DefaultRuns).
			Int("max_runs", simCfg.MaxRuns).
			Msg("configuración inválida, se usan los límites por defecto")
	} else {
		simCfg = cfg.Simulation
	}
	if opts.runs > simCfg.MaxRuns {
		simCfg.MaxRuns = opts.runs
	}

	productRepo := memory.NewProductRepository()
	centerRepo := memory.NewCenterRepository()
	runRepo := memory.NewSimulationRunRepository()
	report := infrapdf.NewMarotoReportGenerator(opts.lang)
	productUC := usecase.NewProductUseCase(productRepo)
	centerUC := usecase.NewCenterUseCase(centerRepo)
	simUC := simulation.NewUseCase(productRepo, centerRepo, runRepo, report, nil, simCfg, log)

	var results []*dto.SimulationRunResponse
	for _, p := range file.Products {
		created, err := productUC.Create(ctx, p.CreateRequest())
		if err != nil {
			return fmt.Errorf("producto %q: %w", p.Name, err)
		}
		if p.Simulation == nil {
			continue
		}
		req := p.Simulation.ProductRequest()
		applyOverrides(&req.Runs, &req.Seed, opts)
		res, err := simUC.SimulateProduct(ctx, created.ID, req)
		if err != nil {
			return fmt.Errorf("simular %q: %w", p.Name, err)
		}
		results = append(results, res)
	}
	for _, c := range file.Centers {
		created, err := centerUC.Create(ctx, dto.CreateCenterRequest{Name: c.Name, Address: c.Address})
		if err != nil {
			return fmt.Errorf("centro %q: %w", c.Name, err)
		}
		for _, fc := range c.FixedCosts {
			if _, err := centerUC.AddFixedCost(ctx, created.ID, dto.AddFixedCostRequest{Name: fc.Name, Value: fc.Value}); err != nil {
				return fmt.Errorf("centro %q: %w", c.Name, err)
			}
		}
		if c.Simulation == nil {
			continue
		}
		req := c.Simulation.CenterRequest()
		applyOverrides(&req.Runs, &req.Seed, opts)
		res, err := simUC.SimulateCenter(ctx, created.ID, req)
		if err != nil {
			return fmt.Errorf("simular %q: %w", c.Name, err)
		}
		results = append(results, res)
	}

	printSummaries(out, format.New(opts.lang), results)

	if opts.reportDir != "" {
		if err := os.MkdirAll(opts.reportDir, 0o755); err != nil {
			return fmt.Errorf("crear %s: %w", opts.reportDir, err)
		}
		for _, r := range results {
			pdfBytes, filename, err := simUC.RunReport(ctx, r.ID)
			if err != nil {
				return err
			}
			path := filepath.Join(opts.reportDir, filename)
			if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", path, err)
			}
			log.Info().Str("path", path).Msg("reporte escrito")
		}
	}
	return nil
}

func applyOverrides(runs *int, seed **int64, opts options) {
	if opts.runs > 0 {
		*runs = opts.runs
	}
	if opts.seed != 0 {
		s := opts.seed
		*seed = &s
	}
}

func printSummaries(out io.Writer, p *format.Printer, results []*dto.SimulationRunResponse) {
	for _, r := range results {
		fmt.Fprintf(out, "\n%s (%s: %s)\n", r.Title, r.SubjectType, r.SubjectName)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		s := r.Summary
		fmt.Fprintf(w, "métrica\t%s\t\n", r.Metric)
		fmt.Fprintf(w, "corridas\t%s\t\n", p.Int(s.Count))
		fmt.Fprintf(w, "semilla\t%d\t\n", r.Seed)
		fmt.Fprintf(w, "media\t%s\t\n", p.Decimal(s.Mean, 4))
		fmt.Fprintf(w, "desv. estándar\t%s\t\n", p.Decimal(s.StdDev, 4))
		fmt.Fprintf(w, "mínimo\t%s\t\n", p.Decimal(s.Min, 4))
		fmt.Fprintf(w, "P05\t%s\t\n", p.Decimal(s.P05, 4))
		fmt.Fprintf(w, "P50\t%s\t\n", p.Decimal(s.P50, 4))
		fmt.Fprintf(w, "P95\t%s\t\n", p.Decimal(s.P95, 4))
		fmt.Fprintf(w, "máximo\t%s\t\n", p.Decimal(s.Max, 4))
		_ = w.Flush()
	}
}
