package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Kind: "produced" | "purchased".
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Kind      string          `json:"kind" validate:"required,oneof=produced purchased"`
	Price     decimal.Decimal `json:"price"`
	Demand    decimal.Decimal `json:"demand"`
	LeadTime  decimal.Decimal `json:"lead_time"`
	Inventory decimal.Decimal `json:"inventory"`
}

// UpdateProductRequest entrada para actualizar atributos numéricos (los libros se editan aparte).
type UpdateProductRequest struct {
	Price     *decimal.Decimal `json:"price"`
	Demand    *decimal.Decimal `json:"demand"`
	LeadTime  *decimal.Decimal `json:"lead_time"`
	Inventory *decimal.Decimal `json:"inventory"`
}

// UpsertCostRequest entrada para agregar o reemplazar un costo por nombre en un libro.
type UpsertCostRequest struct {
	Name  string          `json:"name" validate:"required"`
	Value decimal.Decimal `json:"value"`
}

// CostResponse un componente de costo.
type CostResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// LedgerResponse un libro de costos con su total.
type LedgerResponse struct {
	Name  string          `json:"name"`
	Costs []CostResponse  `json:"costs"`
	Total decimal.Decimal `json:"total"`
}

// ProductResponse salida de un producto con sus dos libros.
type ProductResponse struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Demand            decimal.Decimal `json:"demand"`
	LeadTime          decimal.Decimal `json:"lead_time"`
	Inventory         decimal.Decimal `json:"inventory"`
	StorageCosts      LedgerResponse  `json:"storage_costs"`
	VariableCosts     LedgerResponse  `json:"variable_costs"`
	TotalStorageCost  decimal.Decimal `json:"total_storage_cost"`
	TotalVariableCost decimal.Decimal `json:"total_variable_cost"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// EOQResponse lote económico de pedido calculado con los totales actuales.
type EOQResponse struct {
	ProductID             string          `json:"product_id"`
	Demand                decimal.Decimal `json:"demand"`
	TotalVariableCost     decimal.Decimal `json:"total_variable_cost"`
	TotalStorageCost      decimal.Decimal `json:"total_storage_cost"`
	OptimumInventoryLevel decimal.Decimal `json:"optimum_inventory_level"`
}
