package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/scenario"
)

func TestDemo(t *testing.T) {
	f := scenario.Demo()
	require.Len(t, f.Products, 2)

	p := f.Products[0]
	assert.Equal(t, "Product I", p.Name)
	assert.Equal(t, "100", p.Inventory.String())
	require.NotNil(t, p.Simulation)
	assert.Equal(t, 10, p.Simulation.Runs)

	req := p.Simulation.ProductRequest()
	labor := req.Costs[entity.LedgerProduction]["Labor Costs"]
	assert.Equal(t, "7", labor.Mean.String())
	assert.Equal(t, "5", labor.Lower.String())

	storage := f.Products[1].Simulation.ProductRequest().Costs[entity.LedgerStorage]
	assert.Len(t, storage, 3)
	assert.Equal(t, "0.1", storage["Insurance"].Std.String())
}

func TestLoad_Archivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escenario.yaml")
	content := `
products:
  - name: Tornillo
    kind: Purchased
    demand: "1200"
    price: 0.35
centers:
  - name: Planta Norte
    fixed_costs:
      - {name: Rent, value: 1500}
      - {name: Salaries, value: 4200.50}
    simulation:
      runs: 20
      seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	f, err := scenario.Load(path)
	require.NoError(t, err)
	create := f.Products[0].CreateRequest()
	assert.Equal(t, "purchased", create.Kind)
	assert.Equal(t, "1200", create.Demand.String())
	assert.Equal(t, "0.35", create.Price.String())

	c := f.Centers[0]
	require.Len(t, c.FixedCosts, 2)
	assert.Equal(t, "4200.5", c.FixedCosts[1].Value.String())
	sim := c.Simulation.CenterRequest()
	require.NotNil(t, sim.Seed)
	assert.Equal(t, int64(7), *sim.Seed)
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]string{
		"vacío":         "products: []\n",
		"sin nombre":    "products:\n  - kind: produced\n",
		"tipo inválido": "products:\n  - name: A\n    kind: service\n",
		"no numérico":   "products:\n  - name: A\n    kind: produced\n    demand: mucho\n",
		"yaml roto":     "products: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(content))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := scenario.Parse([]byte("products:\n  - {name: A, kind: produced}\n  - {name: A, kind: purchased}\n"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = scenario.Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
