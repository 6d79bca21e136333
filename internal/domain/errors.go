package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrInvalidType   = errors.New("tipo de valor inválido")
	ErrUnknownLedger = errors.New("libro de costos desconocido para el producto")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")

	// ErrEOQUndefined agrupa las precondiciones del lote económico (EOQ):
	// demanda, costo de almacenamiento y costo variable deben ser > 0.
	ErrEOQUndefined = errors.New("EOQ indefinido: todos los valores deben ser positivos")

	// ErrSimulationRun marca el fallo de una corrida concreta de la simulación.
	ErrSimulationRun = errors.New("fallo en corrida de simulación")
)
