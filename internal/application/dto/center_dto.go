package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCenterRequest entrada para crear un centro (planta, bodega o sucursal).
type CreateCenterRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
}

// AddFixedCostRequest entrada para agregar un costo fijo a un centro.
type AddFixedCostRequest struct {
	Name  string          `json:"name" validate:"required"`
	Value decimal.Decimal `json:"value"`
}

// CenterResponse salida de un centro.
type CenterResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	FixedCosts     []CostResponse  `json:"fixed_costs"`
	TotalFixedCost decimal.Decimal `json:"total_fixed_cost"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CenterListResponse lista paginada de centros.
type CenterListResponse struct {
	Items []CenterResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
