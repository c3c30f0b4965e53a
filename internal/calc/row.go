package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ModoRetirada indica como o campo "Produtos Retirados" é tratado.
// Auto: retirados = 0 e o novo estoque segue a fórmula padrão.
// Manual: o valor digitado é subtraído do novo estoque.
type ModoRetirada int

const (
	RetiradaAuto ModoRetirada = iota
	RetiradaManual
)

func (m ModoRetirada) String() string {
	if m == RetiradaManual {
		return "manual"
	}
	return "auto"
}

// ProdutoRef é o snapshot de catálogo carregado em toda linha calculada.
// Copiado por valor: mudanças posteriores de preço nunca alteram medições
// históricas.
type ProdutoRef struct {
	ID            string
	Nome          string
	Linha         string
	Capacidade    int
	Preco         decimal.Decimal
	PrecoSugestao *decimal.Decimal
}

// EntradaLinha são os quatro campos de texto livre de uma linha de medição,
// exatamente como digitados. SomenteEstoque cobre telas de pura reposição,
// sem conceito de venda.
type EntradaLinha struct {
	EstoqueAtual   string
	Vendidos       string
	Repostos       string
	Retirados      string
	SomenteEstoque bool
}

// LinhaMedicao é a linha derivada, reemitida inteira a cada recomputação.
// O agregador trata a emissão mais recente como autoritativa por ID.
type LinhaMedicao struct {
	ProdutoRef

	EstoqueAtual float64
	Vendidos     float64
	Repostos     float64
	NaoVendidos  float64
	Retirados    float64
	NovoEstoque  float64
	Modo         ModoRetirada

	// Valor = (vendidos + repostos) × preço de revenda. Reposição conta como
	// entrega faturável mesmo aumentando o estoque.
	Valor decimal.Decimal
}

// CalcularLinha deriva todos os campos de uma linha a partir dos textos crus.
//
// O modo retirada segue os textos: qualquer conteúdo no campo Retirados ativa
// o modo manual; limpar o campo para vazio volta ao automático. Nenhuma
// grandeza é saturada — novo estoque negativo é propagado como está e apenas
// sinalizado por Alerta().
func CalcularLinha(p ProdutoRef, in EntradaLinha) LinhaMedicao {
	ea := ParseNumero(in.EstoqueAtual)

	if in.SomenteEstoque {
		return LinhaMedicao{
			ProdutoRef:   p,
			EstoqueAtual: ea,
			NovoEstoque:  ea,
			Modo:         RetiradaAuto,
			Valor:        decimal.Zero,
		}
	}

	v := ParseNumero(in.Vendidos)
	r := ParseNumero(in.Repostos)

	linha := LinhaMedicao{
		ProdutoRef:   p,
		EstoqueAtual: ea,
		Vendidos:     v,
		Repostos:     r,
		NaoVendidos:  ea - v,
		NovoEstoque:  ea - v + r,
		Modo:         RetiradaAuto,
		Valor:        p.Preco.Mul(decimal.NewFromFloat(v + r)),
	}

	if in.Retirados != "" {
		linha.Modo = RetiradaManual
		linha.Retirados = ParseNumero(in.Retirados)
		linha.NovoEstoque -= linha.Retirados
	}

	return linha
}

// Alerta devolve um aviso não bloqueante quando a retirada manual deixa o
// novo estoque negativo. A medição ainda pode ser finalizada: inconsistência
// reconhecida, não corrigida.
func (l LinhaMedicao) Alerta() string {
	if l.Modo == RetiradaManual && l.NovoEstoque < 0 {
		return fmt.Sprintf("%s (%s): novo estoque negativo (%s) após retirada manual",
			l.Nome, l.Linha, FormatarNumero(l.NovoEstoque))
	}
	if l.Retirados < 0 {
		return fmt.Sprintf("%s (%s): produtos retirados não pode ser negativo", l.Nome, l.Linha)
	}
	return ""
}

// LinhaBancada é a linha simplificada das abas bancada e bonificação:
// quantidade × preço, sem reconciliação de estoque. Linhas de bonificação
// têm o valor calculado internamente mas suprimido na exibição.
type LinhaBancada struct {
	ProdutoRef

	Quantidade float64
	Valor      decimal.Decimal
}

// CalcularLinhaBancada deriva uma linha de bancada/bonificação a partir do
// texto cru de quantidade comprada.
func CalcularLinhaBancada(p ProdutoRef, quantidade string) LinhaBancada {
	q := ParseNumero(quantidade)
	return LinhaBancada{
		ProdutoRef: p,
		Quantidade: q,
		Valor:      p.Preco.Mul(decimal.NewFromFloat(q)),
	}
}
