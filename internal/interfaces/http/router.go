package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/application/usecase"
	"github.com/jhoicas/Costeo-api/pkg/jwt"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	CenterUC     *usecase.CenterUseCase
	SimulationUC *simulation.UseCase
	Metrics      http.Handler // nil = sin /metrics
	MetricsPath  string
	AppName      string
	JWTSecret    string // vacío = API sin autenticación (solo desarrollo)
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(requestLogger(deps.Log.Named("http")))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.Metrics))
	}

	// Rutas protegidas (requieren Bearer Token si hay secret)
	var api fiber.Router
	var writer fiber.Handler = passthrough
	if deps.JWTSecret != "" {
		api = app.Group("/api", AuthMiddleware(deps.JWTSecret))
		writer = RequireRole(jwt.RoleAdmin, jwt.RoleAnalyst)
	} else {
		api = app.Group("/api")
	}

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	simulationHandler := NewSimulationHandler(deps.SimulationUC)
	products.Post("/", writer, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writer, productHandler.Update)
	products.Delete("/:id", writer, productHandler.Delete)
	products.Put("/:id/costs/:ledger", writer, productHandler.AddCost)
	products.Get("/:id/costs/:ledger/:name", productHandler.GetCost)
	products.Get("/:id/eoq", productHandler.EOQ)
	products.Post("/:id/simulations", writer, simulationHandler.SimulateProduct)

	// Centers
	centers := api.Group("/centers")
	centerHandler := NewCenterHandler(deps.CenterUC)
	centers.Post("/", writer, centerHandler.Create)
	centers.Get("/", centerHandler.List)
	centers.Get("/:id", centerHandler.GetByID)
	centers.Delete("/:id", writer, centerHandler.Delete)
	centers.Post("/:id/costs", writer, centerHandler.AddFixedCost)
	centers.Post("/:id/simulations", writer, simulationHandler.SimulateCenter)

	// Simulations
	sims := api.Group("/simulations")
	sims.Get("/", simulationHandler.List)
	sims.Get("/:id", simulationHandler.GetByID)
	sims.Get("/:id/report", simulationHandler.Report)
}

func passthrough(c *fiber.Ctx) error { return c.Next() }

// requestLogger registra método, ruta, status y duración de cada petición.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("petición atendida")
		return err
	}
}
