package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumero(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"12,5", 12.5},
		{"12.5", 12.5},
		{"0", 0},
		{"42", 42},
		{" 7 ", 7},
		{"-3", -3},
		{"1.234,5", 0}, // separador duplo degrada para zero
		{"1,2,3", 0},
		{",5", 0.5},
		{"3,", 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseNumero(tc.in), "entrada %q", tc.in)
	}
}

func TestParseNumeroIdempotente(t *testing.T) {
	entradas := []string{"", "abc", "12,5", "0,001", "42", "-17,25", "1.234,5"}
	for _, in := range entradas {
		primeira := ParseNumero(in)
		segunda := ParseNumero(FormatarNumero(primeira))
		assert.Equal(t, primeira, segunda, "entrada %q", in)
	}
}
