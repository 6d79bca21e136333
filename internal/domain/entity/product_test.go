package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/inventory"
)

func mustProduced(t *testing.T, demand any) *entity.Product {
	t.Helper()
	p, err := entity.NewProducedProduct("Product I", entity.ProductAttrs{Demand: demand, Inventory: 100})
	require.NoError(t, err)
	return p
}

func TestNewProduct_ValoresPorDefecto(t *testing.T) {
	p, err := entity.NewPurchasedProduct("Product II", entity.ProductAttrs{})
	require.NoError(t, err)
	assert.Equal(t, entity.KindPurchased, p.Kind)
	assert.True(t, p.Price.IsZero())
	assert.True(t, p.Demand.IsZero())
	assert.True(t, p.LeadTime.IsZero())
	assert.True(t, p.Inventory.IsZero())
	assert.NotNil(t, p.PurchaseCosts())
	assert.Nil(t, p.ProductionCosts(), "un producto comprado no tiene libro de producción")
}

func TestNewProduct_ValidaCampos(t *testing.T) {
	cases := []struct {
		name  string
		pname string
		attrs entity.ProductAttrs
		field string
	}{
		{"nombre vacío", "", entity.ProductAttrs{}, "nombre"},
		{"inventario negativo", "P", entity.ProductAttrs{Inventory: -1}, "inventory"},
		{"demanda no numérica", "P", entity.ProductAttrs{Demand: "mucho"}, "demand"},
		{"tiempo de entrega negativo", "P", entity.ProductAttrs{LeadTime: "-2"}, "lead_time"},
		{"precio de tipo inválido", "P", entity.ProductAttrs{Price: true}, "price"},
		// El primer campo inválido es el que se informa (inventario antes que precio).
		{"varios inválidos", "P", entity.ProductAttrs{Inventory: -1, Price: -1}, "inventory"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewProducedProduct(tc.pname, tc.attrs)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestNewProduct_TipoDesconocido(t *testing.T) {
	_, err := entity.NewProduct("leased", "P", entity.ProductAttrs{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_TotalVariableCostSegunVariante(t *testing.T) {
	produced := mustProduced(t, 10)
	require.NoError(t, produced.ProductionCosts().Add(entity.MustCost("Energy", 2)))
	require.NoError(t, produced.ProductionCosts().Add(entity.MustCost("Labor", 7)))
	require.NoError(t, produced.StorageCosts().Add(entity.MustCost("Warehousing", 1)))
	assert.True(t, decimal.NewFromInt(9).Equal(produced.TotalVariableCost()))
	assert.True(t, decimal.NewFromInt(1).Equal(produced.TotalStorageCost()))

	purchased, err := entity.NewPurchasedProduct("Product II", entity.ProductAttrs{})
	require.NoError(t, err)
	require.NoError(t, purchased.PurchaseCosts().Add(entity.MustCost("Unit price", "4.5")))
	assert.True(t, decimal.RequireFromString("4.5").Equal(purchased.TotalVariableCost()))
	assert.Same(t, purchased.PurchaseCosts(), purchased.VariableCosts())
	assert.Equal(t, entity.LedgerPurchase, purchased.VariableLedgerName())
}

func TestProduct_Ledger(t *testing.T) {
	p := mustProduced(t, 1)
	l, err := p.Ledger(entity.LedgerStorage)
	require.NoError(t, err)
	assert.Same(t, p.StorageCosts(), l)

	l, err = p.Ledger(entity.LedgerProduction)
	require.NoError(t, err)
	assert.Same(t, p.ProductionCosts(), l)

	_, err = p.Ledger(entity.LedgerPurchase)
	assert.ErrorIs(t, err, domain.ErrUnknownLedger, "producto fabricado no tiene costos de compra")
	_, err = p.Ledger("price")
	assert.ErrorIs(t, err, domain.ErrUnknownLedger)
}

// Escenario 2: demanda 1000, almacenamiento 2, producción 50 → sqrt(50000) ≈ 223.6.
func TestProduct_OptimumInventoryLevel(t *testing.T) {
	p := mustProduced(t, 1000)
	require.NoError(t, p.StorageCosts().Add(entity.MustCost("Warehousing", 2)))
	require.NoError(t, p.ProductionCosts().Add(entity.MustCost("Energy", 20)))
	require.NoError(t, p.ProductionCosts().Add(entity.MustCost("Labor", 30)))

	eoq, err := p.OptimumInventoryLevel()
	require.NoError(t, err)
	assert.Equal(t, "223.6", eoq.Round(1).String())
	assert.InDelta(t, 223.60679775, eoq.InexactFloat64(), 1e-6)
}

// Escenario 3: costo de almacenamiento cero → error de precondición, no una división.
func TestProduct_OptimumInventoryLevel_AlmacenamientoCero(t *testing.T) {
	p := mustProduced(t, 1000)
	require.NoError(t, p.ProductionCosts().Add(entity.MustCost("Energy", 50)))

	_, err := p.OptimumInventoryLevel()
	require.ErrorIs(t, err, domain.ErrEOQUndefined)
	assert.ErrorIs(t, err, inventory.ErrZeroStorageCost)
}

func TestProduct_OptimumInventoryLevel_PrecondicionesDistintas(t *testing.T) {
	noDemand := mustProduced(t, 0)
	require.NoError(t, noDemand.StorageCosts().Add(entity.MustCost("W", 1)))
	require.NoError(t, noDemand.ProductionCosts().Add(entity.MustCost("E", 1)))
	_, err := noDemand.OptimumInventoryLevel()
	assert.ErrorIs(t, err, inventory.ErrZeroDemand)

	noVariable := mustProduced(t, 10)
	require.NoError(t, noVariable.StorageCosts().Add(entity.MustCost("W", 1)))
	_, err = noVariable.OptimumInventoryLevel()
	assert.ErrorIs(t, err, inventory.ErrZeroVariableCost)

	// Un costo registrado en cero cuenta como cero.
	require.NoError(t, noVariable.ProductionCosts().Add(entity.MustCost("E", 0)))
	_, err = noVariable.OptimumInventoryLevel()
	assert.ErrorIs(t, err, inventory.ErrZeroVariableCost)
}

// El EOQ se recalcula con el estado actual de los libros.
func TestProduct_OptimumInventoryLevel_SinCache(t *testing.T) {
	p := mustProduced(t, 1000)
	require.NoError(t, p.StorageCosts().Add(entity.MustCost("W", 2)))
	require.NoError(t, p.ProductionCosts().Add(entity.MustCost("E", 50)))
	first, err := p.OptimumInventoryLevel()
	require.NoError(t, err)

	require.NoError(t, p.StorageCosts().Add(entity.MustCost("W", 8)))
	second, err := p.OptimumInventoryLevel()
	require.NoError(t, err)
	assert.InDelta(t, first.InexactFloat64()/2, second.InexactFloat64(), 1e-9)
}

func TestProduct_Setters(t *testing.T) {
	p := mustProduced(t, 1)
	require.NoError(t, p.SetDemand("250"))
	assert.True(t, decimal.NewFromInt(250).Equal(p.Demand))
	assert.ErrorIs(t, p.SetPrice(-1), domain.ErrInvalidInput)
	assert.ErrorIs(t, p.SetInventory("x"), domain.ErrInvalidInput)
	require.NoError(t, p.SetLeadTime(3))
	assert.True(t, decimal.NewFromInt(3).Equal(p.LeadTime))
}

func TestProduct_CloneCopiaLibros(t *testing.T) {
	p := mustProduced(t, 1)
	require.NoError(t, p.ProductionCosts().Add(entity.MustCost("E", 5)))
	cp := p.Clone()
	require.NoError(t, cp.ProductionCosts().Add(entity.MustCost("E", 50)))
	require.NoError(t, cp.StorageCosts().Add(entity.MustCost("W", 1)))

	assert.True(t, decimal.NewFromInt(5).Equal(p.TotalVariableCost()))
	assert.True(t, p.TotalStorageCost().IsZero())
	assert.True(t, decimal.NewFromInt(50).Equal(cp.TotalVariableCost()))
}
