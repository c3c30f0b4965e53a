package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func produtoTeste() ProdutoRef {
	sugestao := decimal.NewFromFloat(65)
	return ProdutoRef{
		ID:            "p1",
		Nome:          "Shampoo",
		Linha:         "Wood",
		Capacidade:    240,
		Preco:         decimal.NewFromFloat(42),
		PrecoSugestao: &sugestao,
	}
}

func TestCalcularLinhaModoAuto(t *testing.T) {
	l := CalcularLinha(produtoTeste(), EntradaLinha{
		EstoqueAtual: "10",
		Vendidos:     "2",
		Repostos:     "1",
	})

	assert.Equal(t, RetiradaAuto, l.Modo)
	assert.Equal(t, 0.0, l.Retirados)
	assert.Equal(t, 8.0, l.NaoVendidos)
	assert.Equal(t, 9.0, l.NovoEstoque) // 10 - 2 + 1
	assert.True(t, l.Valor.Equal(decimal.NewFromFloat(126)), "valor = (2+1) * 42")
	assert.Empty(t, l.Alerta())
}

func TestCalcularLinhaModoManual(t *testing.T) {
	l := CalcularLinha(produtoTeste(), EntradaLinha{
		EstoqueAtual: "10",
		Vendidos:     "2",
		Repostos:     "1",
		Retirados:    "3",
	})

	assert.Equal(t, RetiradaManual, l.Modo)
	assert.Equal(t, 3.0, l.Retirados)
	assert.Equal(t, 6.0, l.NovoEstoque) // 10 - 2 + 1 - 3
	// O valor não depende do modo de retirada.
	assert.True(t, l.Valor.Equal(decimal.NewFromFloat(126)))
}

func TestCalcularLinhaTransicaoDeModo(t *testing.T) {
	entrada := EntradaLinha{EstoqueAtual: "10", Vendidos: "2", Repostos: "1"}

	auto := CalcularLinha(produtoTeste(), entrada)
	require.Equal(t, 9.0, auto.NovoEstoque)

	entrada.Retirados = "3"
	manual := CalcularLinha(produtoTeste(), entrada)
	assert.Equal(t, RetiradaManual, manual.Modo)
	assert.Equal(t, 6.0, manual.NovoEstoque)

	// Limpar o campo volta ao automático.
	entrada.Retirados = ""
	devolta := CalcularLinha(produtoTeste(), entrada)
	assert.Equal(t, RetiradaAuto, devolta.Modo)
	assert.Equal(t, 9.0, devolta.NovoEstoque)
	assert.Equal(t, 0.0, devolta.Retirados)
}

func TestCalcularLinhaEstoqueNegativoNaoSatura(t *testing.T) {
	l := CalcularLinha(produtoTeste(), EntradaLinha{
		EstoqueAtual: "5",
		Vendidos:     "2",
		Repostos:     "0",
		Retirados:    "10",
	})

	// 5 - 2 + 0 - 10: propagado como está, só gera aviso.
	assert.Equal(t, -7.0, l.NovoEstoque)
	assert.NotEmpty(t, l.Alerta())
}

func TestCalcularLinhaNaoVendidosNegativo(t *testing.T) {
	// Vendidos acima do estoque sinaliza erro de digitação, não é corrigido.
	l := CalcularLinha(produtoTeste(), EntradaLinha{EstoqueAtual: "3", Vendidos: "5"})
	assert.Equal(t, -2.0, l.NaoVendidos)
	assert.Equal(t, RetiradaAuto, l.Modo)
}

func TestCalcularLinhaSomenteEstoque(t *testing.T) {
	l := CalcularLinha(produtoTeste(), EntradaLinha{
		EstoqueAtual:   "12",
		Vendidos:       "4", // ignorado em modo reposição
		Repostos:       "2",
		SomenteEstoque: true,
	})

	assert.Equal(t, 12.0, l.EstoqueAtual)
	assert.Equal(t, 12.0, l.NovoEstoque)
	assert.Equal(t, 0.0, l.Vendidos)
	assert.True(t, l.Valor.IsZero())
}

func TestCalcularLinhaEntradaInvalida(t *testing.T) {
	l := CalcularLinha(produtoTeste(), EntradaLinha{
		EstoqueAtual: "abc",
		Vendidos:     "",
		Repostos:     "x,y",
	})

	assert.Equal(t, 0.0, l.EstoqueAtual)
	assert.Equal(t, 0.0, l.NovoEstoque)
	assert.True(t, l.Valor.IsZero())
}

func TestCalcularLinhaBancada(t *testing.T) {
	p := ProdutoRef{ID: "b1", Nome: "Shampoo", Linha: "Wood", Capacidade: 1000, Preco: decimal.NewFromFloat(52)}

	l := CalcularLinhaBancada(p, "3")
	assert.Equal(t, 3.0, l.Quantidade)
	assert.True(t, l.Valor.Equal(decimal.NewFromFloat(156)))

	vazia := CalcularLinhaBancada(p, "")
	assert.Equal(t, 0.0, vazia.Quantidade)
	assert.True(t, vazia.Valor.IsZero())
}
