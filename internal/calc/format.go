package calc

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatarBRL formata um valor monetário como Real brasileiro:
// vírgula decimal, ponto de milhar (1234.5 → "R$ 1.234,50").
func FormatarBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	inteiro, fracao, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	prefixo := "R$ "
	if v.IsNegative() {
		prefixo = "-R$ "
	}
	return prefixo + b.String() + "," + fracao
}

// FormatarDataHora formata no padrão brasileiro dd/mm/aaaa hh:mm.
func FormatarDataHora(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// SufixoUnidade infere a unidade de capacidade pelo nome do produto:
// gramas para pomadas e pós, mililitros para o restante.
func SufixoUnidade(nome string) string {
	if strings.Contains(nome, "Pomada") || strings.Contains(nome, "Pó") {
		return "g"
	}
	return "ml"
}
