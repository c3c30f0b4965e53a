// Package catalog embute os catálogos de fábrica: a lista de produtos da
// distribuidora (revenda e bancada) e os clientes semeados. Produtos são
// copiados para o banco pelo seed e de lá evoluem (estoque muda); clientes
// embutidos ficam só aqui e vencem conflitos de ID com cadastros do usuário.
package catalog

import (
	"bymen/internal/model"

	"github.com/shopspring/decimal"
)

func preco(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func precoOpt(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// Produtos devolve o catálogo completo: revenda e bancada, na ordem de
// exibição. EstoqueAtual é a linha de base usada quando o razão nunca foi
// tocado.
func Produtos() []model.Produto {
	return append(produtosRevenda(), produtosBancada()...)
}

func produtosRevenda() []model.Produto {
	return []model.Produto{
		{ID: "p1", Nome: "Shampoo", Linha: "Wood", Capacidade: 240, Tipo: model.TipoRevenda, PrecoRevenda: preco(42.0), PrecoSugestao: precoOpt(65.0), EstoqueAtual: 100, Ativo: true},
		{ID: "p2", Nome: "Shampoo", Linha: "Ocean", Capacidade: 240, Tipo: model.TipoRevenda, PrecoRevenda: preco(42.0), PrecoSugestao: precoOpt(65.0), EstoqueAtual: 100, Ativo: true},
		{ID: "p3", Nome: "Condicionador", Linha: "Wood", Capacidade: 140, Tipo: model.TipoRevenda, PrecoRevenda: preco(34.0), PrecoSugestao: precoOpt(55.0), EstoqueAtual: 80, Ativo: true},
		{ID: "p4", Nome: "Condicionador", Linha: "Ocean", Capacidade: 140, Tipo: model.TipoRevenda, PrecoRevenda: preco(34.0), PrecoSugestao: precoOpt(55.0), EstoqueAtual: 80, Ativo: true},
		{ID: "p5", Nome: "Balm de Barba", Linha: "Wood", Capacidade: 140, Tipo: model.TipoRevenda, PrecoRevenda: preco(38.0), PrecoSugestao: precoOpt(60.0), EstoqueAtual: 50, Ativo: true},
		{ID: "p6", Nome: "Balm de Barba", Linha: "Ocean", Capacidade: 140, Tipo: model.TipoRevenda, PrecoRevenda: preco(38.0), PrecoSugestao: precoOpt(60.0), EstoqueAtual: 50, Ativo: true},
		{ID: "p7", Nome: "Óleo de Barba", Linha: "Wood", Capacidade: 30, Tipo: model.TipoRevenda, PrecoRevenda: preco(45.0), PrecoSugestao: precoOpt(70.0), EstoqueAtual: 40, Ativo: true},
		{ID: "p8", Nome: "Óleo de Barba", Linha: "Ocean", Capacidade: 30, Tipo: model.TipoRevenda, PrecoRevenda: preco(45.0), PrecoSugestao: precoOpt(70.0), EstoqueAtual: 40, Ativo: true},
		{ID: "p9", Nome: "Pomada Efeito Matte", Linha: "Wood", Capacidade: 100, Tipo: model.TipoRevenda, PrecoRevenda: preco(58.0), PrecoSugestao: precoOpt(85.0), EstoqueAtual: 75, Ativo: true},
		{ID: "p10", Nome: "Pomada Efeito Matte", Linha: "Ocean", Capacidade: 100, Tipo: model.TipoRevenda, PrecoRevenda: preco(58.0), PrecoSugestao: precoOpt(85.0), EstoqueAtual: 75, Ativo: true},
		{ID: "p11", Nome: "Pomada Efeito Brilho", Linha: "Wood", Capacidade: 100, Tipo: model.TipoRevenda, PrecoRevenda: preco(58.0), PrecoSugestao: precoOpt(85.0), EstoqueAtual: 75, Ativo: true},
		{ID: "p12", Nome: "Pomada Efeito Brilho", Linha: "Ocean", Capacidade: 100, Tipo: model.TipoRevenda, PrecoRevenda: preco(58.0), PrecoSugestao: precoOpt(85.0), EstoqueAtual: 75, Ativo: true},
		{ID: "p13", Nome: "Pó Modelador Efeito Matte", Linha: "Bymen", Capacidade: 10, Tipo: model.TipoRevenda, PrecoRevenda: preco(35.0), PrecoSugestao: precoOpt(60.0), EstoqueAtual: 50, Ativo: true},
	}
}

func produtosBancada() []model.Produto {
	return []model.Produto{
		{ID: "b1", Nome: "Shampoo", Linha: "Wood", Capacidade: 1000, Tipo: model.TipoBancada, PrecoRevenda: preco(52.0), EstoqueAtual: 50, Ativo: true},
		{ID: "b2", Nome: "Gel de Barbear", Linha: "Wood", Capacidade: 1000, Tipo: model.TipoBancada, PrecoRevenda: preco(58.0), EstoqueAtual: 40, Ativo: true},
		{ID: "b3", Nome: "Condicionador", Linha: "Wood", Capacidade: 500, Tipo: model.TipoBancada, PrecoRevenda: preco(42.0), EstoqueAtual: 60, Ativo: true},
		{ID: "b4", Nome: "Balm de Barba", Linha: "Wood", Capacidade: 500, Tipo: model.TipoBancada, PrecoRevenda: preco(46.0), EstoqueAtual: 45, Ativo: true},
		{ID: "b5", Nome: "Pomada Efeito Matte", Linha: "Wood", Capacidade: 100, Tipo: model.TipoBancada, PrecoRevenda: preco(44.0), EstoqueAtual: 70, Ativo: true},
		{ID: "b6", Nome: "Pomada Efeito Matte", Linha: "Ocean", Capacidade: 100, Tipo: model.TipoBancada, PrecoRevenda: preco(44.0), EstoqueAtual: 70, Ativo: true},
		{ID: "b7", Nome: "Pomada Efeito Brilho", Linha: "Ocean", Capacidade: 100, Tipo: model.TipoBancada, PrecoRevenda: preco(44.0), EstoqueAtual: 70, Ativo: true},
		{ID: "b8", Nome: "Pomada Efeito Brilho", Linha: "Wood", Capacidade: 100, Tipo: model.TipoBancada, PrecoRevenda: preco(44.0), EstoqueAtual: 70, Ativo: true},
		{ID: "b9", Nome: "Pó Modelador Efeito Matte", Linha: "Bymen", Capacidade: 10, Tipo: model.TipoBancada, PrecoRevenda: preco(27.0), EstoqueAtual: 35, Ativo: true},
		{ID: "b10", Nome: "Óleo de Barba", Linha: "Wood", Capacidade: 30, Tipo: model.TipoBancada, PrecoRevenda: preco(37.0), EstoqueAtual: 40, Ativo: true},
		{ID: "b11", Nome: "Óleo de Barba", Linha: "Ocean", Capacidade: 30, Tipo: model.TipoBancada, PrecoRevenda: preco(37.0), EstoqueAtual: 40, Ativo: true},
	}
}

// Clientes devolve os clientes embutidos de fábrica.
func Clientes() []model.Cliente {
	return []model.Cliente{
		{ID: "c1", Nome: "Barbearia Elite", CnpjCpf: "12.345.678/0001-10", Endereco: "Rua das Palmeiras, 100 - São Paulo, SP", Responsavel: "João Silva", Telefone: "+55 11 99999-1111"},
		{ID: "c2", Nome: "Barbearia Central", CnpjCpf: "98.765.432/0001-55", Endereco: "Av. Paulista, 2000 - São Paulo, SP", Responsavel: "Carlos Souza", Telefone: "+55 11 99999-2222"},
		{ID: "c3", Nome: "Barbearia da Praça", CnpjCpf: "33.444.555/0001-22", Endereco: "Praça Central, 15 - Campinas, SP", Responsavel: "Marcos Lima", Telefone: "+55 11 99999-3333"},
		{ID: "c4", Nome: "Barbearia Premium", CnpjCpf: "77.888.999/0001-01", Endereco: "Alameda Santos, 800 - São Paulo, SP", Responsavel: "Fernanda Rocha", Telefone: "+55 11 99999-4444"},
	}
}

// ClienteEmbutido informa se um ID pertence a um cliente de fábrica.
func ClienteEmbutido(id string) bool {
	for _, c := range Clientes() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// NomeCliente devolve o nome de um cliente embutido, ou "" se desconhecido.
func NomeCliente(id string) string {
	for _, c := range Clientes() {
		if c.ID == id {
			return c.Nome
		}
	}
	return ""
}

// OrdemProdutos devolve os IDs na ordem de exibição do catálogo.
func OrdemProdutos() []string {
	ps := Produtos()
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
