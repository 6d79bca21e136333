package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/Costeo-api/docs"
	"github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("sim_default_runs", cfg.Simulation.DefaultRuns).
		Int("sim_max_runs", cfg.Simulation.MaxRuns).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API queda sin autenticación")
	}

	productRepo := memory.NewProductRepository()
	centerRepo := memory.NewCenterRepository()
	runRepo := memory.NewSimulationRunRepository()

	var recorder simulation.Recorder = simulation.NopRecorder{}
	var promRecorder *metrics.PrometheusRecorder
	if cfg.Metrics.Enabled {
		promRecorder = metrics.NewPrometheusRecorder()
		recorder = promRecorder
	}

	productUC := usecase.NewProductUseCase(productRepo)
	centerUC := usecase.NewCenterUseCase(centerRepo)
	simulationUC := simulation.NewUseCase(
		productRepo, centerRepo, runRepo,
		infrapdf.NewMarotoReportGenerator("es"),
		recorder, cfg.Simulation, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo API",
	}))

	deps := httpRouter.RouterDeps{
		ProductUC:    productUC,
		CenterUC:     centerUC,
		SimulationUC: simulationUC,
		AppName:      cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	}
	if promRecorder != nil {
		deps.Metrics = promRecorder.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
