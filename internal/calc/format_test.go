package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatarBRL(t *testing.T) {
	cases := []struct {
		valor float64
		want  string
	}{
		{0, "R$ 0,00"},
		{12.5, "R$ 12,50"},
		{1234.5, "R$ 1.234,50"},
		{1501.3, "R$ 1.501,30"},
		{1234567.89, "R$ 1.234.567,89"},
		{-42, "-R$ 42,00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatarBRL(decimal.NewFromFloat(tc.valor)))
	}
}

func TestFormatarDataHora(t *testing.T) {
	d := time.Date(2026, 1, 15, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "15/01/2026 14:30", FormatarDataHora(d))
}

func TestSufixoUnidade(t *testing.T) {
	assert.Equal(t, "g", SufixoUnidade("Pomada Efeito Matte"))
	assert.Equal(t, "g", SufixoUnidade("Pó Modelador Efeito Matte"))
	assert.Equal(t, "ml", SufixoUnidade("Shampoo"))
	assert.Equal(t, "ml", SufixoUnidade("Óleo de Barba"))
}
