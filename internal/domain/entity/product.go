package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ProductKind variante del producto: fabricado por la empresa o comprado a proveedores.
type ProductKind string

const (
	KindProduced  ProductKind = "produced"
	KindPurchased ProductKind = "purchased"
)

// Nombres de los libros de costos de un producto.
const (
	LedgerStorage    = "storage_costs"
	LedgerProduction = "production_costs"
	LedgerPurchase   = "purchase_costs"
)

// Valid indica si la variante es conocida.
func (k ProductKind) Valid() bool {
	return k == KindProduced || k == KindPurchased
}

// ProductAttrs atributos numéricos de un producto. nil equivale a 0.
// Aceptan los mismos tipos que NewCost (decimal, enteros, flotantes, strings numéricos).
type ProductAttrs struct {
	Price     any
	Demand    any
	LeadTime  any
	Inventory any
}

// Product representa un producto de la cadena de suministro con sus libros de costos.
// Todo producto tiene costos de almacenamiento y exactamente un libro variable:
// costos de producción (KindProduced) o costos de compra (KindPurchased).
type Product struct {
	ID        string
	Kind      ProductKind
	Name      string
	Inventory decimal.Decimal
	Demand    decimal.Decimal
	LeadTime  decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time

	storage    *Costs
	production *Costs
	purchase   *Costs
}

// NewProducedProduct construye un producto fabricado.
func NewProducedProduct(name string, attrs ProductAttrs) (*Product, error) {
	return NewProduct(KindProduced, name, attrs)
}

// NewPurchasedProduct construye un producto comprado.
func NewPurchasedProduct(name string, attrs ProductAttrs) (*Product, error) {
	return NewProduct(KindPurchased, name, attrs)
}

// NewProduct valida nombre y atributos (en orden: inventario, demanda, tiempo de entrega, precio)
// y devuelve el primer error indicando el campo.
func NewProduct(kind ProductKind, name string, attrs ProductAttrs) (*Product, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de producto desconocido %q", domain.ErrInvalidInput, kind)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: nombre del producto vacío", domain.ErrInvalidInput)
	}
	p := &Product{Kind: kind, Name: name, storage: NewCosts()}
	var err error
	if p.Inventory, err = nonNegative("inventory", attrs.Inventory); err != nil {
		return nil, err
	}
	if p.Demand, err = nonNegative("demand", attrs.Demand); err != nil {
		return nil, err
	}
	if p.LeadTime, err = nonNegative("lead_time", attrs.LeadTime); err != nil {
		return nil, err
	}
	if p.Price, err = nonNegative("price", attrs.Price); err != nil {
		return nil, err
	}
	switch kind {
	case KindProduced:
		p.production = NewCosts()
	case KindPurchased:
		p.purchase = NewCosts()
	}
	return p, nil
}

func nonNegative(field string, value any) (decimal.Decimal, error) {
	if value == nil {
		return decimal.Zero, nil
	}
	d, err := ToDecimal(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s inválido: %v", domain.ErrInvalidInput, field, value)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s no puede ser negativo: %s", domain.ErrInvalidInput, field, d)
	}
	return d, nil
}

// SetInventory actualiza el inventario validando que no sea negativo.
func (p *Product) SetInventory(v any) error {
	d, err := nonNegative("inventory", v)
	if err != nil {
		return err
	}
	p.Inventory = d
	return nil
}

// SetDemand actualiza la demanda validando que no sea negativa.
func (p *Product) SetDemand(v any) error {
	d, err := nonNegative("demand", v)
	if err != nil {
		return err
	}
	p.Demand = d
	return nil
}

// SetLeadTime actualiza el tiempo de entrega validando que no sea negativo.
func (p *Product) SetLeadTime(v any) error {
	d, err := nonNegative("lead_time", v)
	if err != nil {
		return err
	}
	p.LeadTime = d
	return nil
}

// SetPrice actualiza el precio validando que no sea negativo.
func (p *Product) SetPrice(v any) error {
	d, err := nonNegative("price", v)
	if err != nil {
		return err
	}
	p.Price = d
	return nil
}

// StorageCosts libro de costos de almacenamiento (común a ambas variantes).
func (p *Product) StorageCosts() *Costs { return p.storage }

// ProductionCosts libro de costos de producción; nil si el producto es comprado.
func (p *Product) ProductionCosts() *Costs { return p.production }

// PurchaseCosts libro de costos de compra; nil si el producto es fabricado.
func (p *Product) PurchaseCosts() *Costs { return p.purchase }

// VariableCosts libro variable de la variante (producción o compra).
func (p *Product) VariableCosts() *Costs {
	switch p.Kind {
	case KindProduced:
		return p.production
	case KindPurchased:
		return p.purchase
	}
	return nil
}

// VariableLedgerName nombre del libro variable de la variante.
func (p *Product) VariableLedgerName() string {
	if p.Kind == KindPurchased {
		return LedgerPurchase
	}
	return LedgerProduction
}

// Ledger resuelve un libro por nombre. Pedir el libro de la otra variante es un error.
func (p *Product) Ledger(name string) (*Costs, error) {
	switch name {
	case LedgerStorage:
		return p.storage, nil
	case LedgerProduction:
		if p.Kind == KindProduced {
			return p.production, nil
		}
	case LedgerPurchase:
		if p.Kind == KindPurchased {
			return p.purchase, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (producto %s)", domain.ErrUnknownLedger, name, p.Kind)
}

// TotalStorageCost total del libro de almacenamiento.
func (p *Product) TotalStorageCost() decimal.Decimal {
	return p.storage.Total()
}

// TotalVariableCost total del libro variable según la variante.
func (p *Product) TotalVariableCost() decimal.Decimal {
	switch p.Kind {
	case KindProduced:
		return p.production.Total()
	case KindPurchased:
		return p.purchase.Total()
	}
	return decimal.Zero
}

// OptimumInventoryLevel lote económico (EOQ) calculado con los totales actuales; no se cachea.
// Falla con un error que envuelve domain.ErrEOQUndefined si demanda o algún total es cero.
func (p *Product) OptimumInventoryLevel() (decimal.Decimal, error) {
	return inventory.EOQ(p.Demand, p.TotalVariableCost(), p.TotalStorageCost())
}

// Clone copia profunda del producto (incluye libros).
func (p *Product) Clone() *Product {
	cp := *p
	cp.storage = p.storage.Clone()
	if p.production != nil {
		cp.production = p.production.Clone()
	}
	if p.purchase != nil {
		cp.purchase = p.purchase.Clone()
	}
	return &cp
}

func (p *Product) String() string {
	return fmt.Sprintf("<Product: %s - Inventory: %s>", p.Name, p.Inventory)
}
