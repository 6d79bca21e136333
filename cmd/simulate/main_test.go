package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Demo(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	err := run(context.Background(), options{seed: 42, lang: "es", logLevel: "error", reportDir: dir}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Product Variable Cost (product: Product I)")
	assert.Contains(t, out.String(), "Product Storage Cost (product: Product II)")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRun_EscenarioConCentro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escenario.yaml")
	content := `
centers:
  - name: Planta Norte
    fixed_costs:
      - {name: Rent, value: 1500}
    simulation:
      title: Costo fijo
      runs: 20
      seed: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), options{scenario: path, lang: "es", logLevel: "error"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Costo fijo (center: Planta Norte)")
	assert.Contains(t, out.String(), "fixed_cost")
}

func TestRun_EscenarioInexistente(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{scenario: "no-existe.yaml", logLevel: "error"}, &out)
	assert.Error(t, err)
}

func TestRun_ConfigInvalidaAvisaYUsaLimitesPorDefecto(t *testing.T) {
	t.Setenv("SIM_DEFAULT_RUNS", "-5")

	var out, logs bytes.Buffer
	err := run(context.Background(), options{seed: 1, runs: 5, lang: "es", logLevel: "warn", logOut: &logs}, &out)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "configuración inválida, se usan los límites por defecto")
	assert.Contains(t, logs.String(), "SIM_DEFAULT_RUNS")
	assert.Contains(t, out.String(), "Product I")
}
