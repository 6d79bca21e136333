package format_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Costeo-api/pkg/format"
)

func TestDecimal_Espanol(t *testing.T) {
	p := format.New("es")
	assert.Equal(t, "1.234.567,89", p.Decimal(decimal.RequireFromString("1234567.891"), 2))
	assert.Equal(t, "0,50", p.Decimal(decimal.RequireFromString("0.5"), 2))
}

func TestDecimal_Ingles(t *testing.T) {
	p := format.New("en-US")
	assert.Equal(t, "1,234,567.89", p.Decimal(decimal.RequireFromString("1234567.891"), 2))
	assert.Equal(t, "223.6", p.Decimal(decimal.RequireFromString("223.6067977"), 1))
	assert.Equal(t, "10,000", p.Int(10000))
}

func TestNew_IdiomaInvalidoUsaEspanol(t *testing.T) {
	p := format.New("%%")
	assert.Equal(t, "2.000.000,00", p.Decimal(decimal.NewFromInt(2000000), 2))
}
