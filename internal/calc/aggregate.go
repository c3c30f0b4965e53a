package calc

import "github.com/shopspring/decimal"

// descontoPix: pagamento em PIX aplica 5% de desconto, somente sobre a
// parcela de medição — nunca sobre a bancada.
var fatorPix = decimal.NewFromFloat(0.95)

// Agregado mantém, por categoria, o estado mais recente de cada linha
// (chaveada por ID de produto) e recalcula os totais a cada atualização.
// A ordem de inserção é irrelevante para os totais; a exibição segue a
// ordem de catálogo informada na construção.
type Agregado struct {
	PagamentoPix bool

	ordem   []string
	medicao map[string]LinhaMedicao
	bancada map[string]LinhaBancada
	bonus   map[string]LinhaBancada
	extras  []string // ids fora da ordem de catálogo, em ordem de chegada
}

// NovoAgregado cria um agregador vazio. ordemCatalogo determina a ordem de
// exibição das linhas; IDs desconhecidos são anexados ao final.
func NovoAgregado(ordemCatalogo []string) *Agregado {
	return &Agregado{
		ordem:   ordemCatalogo,
		medicao: make(map[string]LinhaMedicao),
		bancada: make(map[string]LinhaBancada),
		bonus:   make(map[string]LinhaBancada),
	}
}

// DefinirMedicao substitui a linha de medição do produto pela emissão mais
// recente.
func (a *Agregado) DefinirMedicao(l LinhaMedicao) {
	a.registrar(l.ID)
	a.medicao[l.ID] = l
}

// DefinirBancada substitui a linha de bancada do produto.
func (a *Agregado) DefinirBancada(l LinhaBancada) {
	a.registrar(l.ID)
	a.bancada[l.ID] = l
}

// DefinirBonus substitui a linha de bonificação do produto.
func (a *Agregado) DefinirBonus(l LinhaBancada) {
	a.registrar(l.ID)
	a.bonus[l.ID] = l
}

func (a *Agregado) registrar(id string) {
	for _, o := range a.ordem {
		if o == id {
			return
		}
	}
	for _, e := range a.extras {
		if e == id {
			return
		}
	}
	a.extras = append(a.extras, id)
}

func (a *Agregado) ids() []string {
	out := make([]string, 0, len(a.ordem)+len(a.extras))
	out = append(out, a.ordem...)
	return append(out, a.extras...)
}

// LinhasMedicao devolve as linhas de medição em ordem de catálogo.
func (a *Agregado) LinhasMedicao() []LinhaMedicao {
	out := make([]LinhaMedicao, 0, len(a.medicao))
	for _, id := range a.ids() {
		if l, ok := a.medicao[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// LinhasBancada devolve as linhas de bancada em ordem de catálogo.
func (a *Agregado) LinhasBancada() []LinhaBancada {
	return a.linhasSimples(a.bancada)
}

// LinhasBonus devolve as linhas de bonificação em ordem de catálogo.
func (a *Agregado) LinhasBonus() []LinhaBancada {
	return a.linhasSimples(a.bonus)
}

func (a *Agregado) linhasSimples(m map[string]LinhaBancada) []LinhaBancada {
	out := make([]LinhaBancada, 0, len(m))
	for _, id := range a.ids() {
		if l, ok := m[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// ValorMedicao é a soma dos valores das linhas de medição.
func (a *Agregado) ValorMedicao() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.medicao {
		total = total.Add(l.Valor)
	}
	return total
}

// ValorBancada é a soma dos valores das linhas de bancada.
func (a *Agregado) ValorBancada() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.bancada {
		total = total.Add(l.Valor)
	}
	return total
}

// QuantidadeBonus é a soma das quantidades bonificadas. Bonificação não tem
// valor monetário: é dada de graça.
func (a *Agregado) QuantidadeBonus() float64 {
	var total float64
	for _, l := range a.bonus {
		total += l.Quantidade
	}
	return total
}

// TotalGeral = valor da medição + valor da bancada, sem desconto.
func (a *Agregado) TotalGeral() decimal.Decimal {
	return a.ValorMedicao().Add(a.ValorBancada())
}

// ValorMedicaoPix é a parcela de medição com o desconto PIX aplicado.
// Sem a flag, devolve o valor cheio.
func (a *Agregado) ValorMedicaoPix() decimal.Decimal {
	if !a.PagamentoPix {
		return a.ValorMedicao()
	}
	return a.ValorMedicao().Mul(fatorPix)
}

// DescontoPix é a diferença entre a parcela de medição cheia e a com PIX.
func (a *Agregado) DescontoPix() decimal.Decimal {
	return a.ValorMedicao().Sub(a.ValorMedicaoPix())
}

// TotalAPagar é o total exibido/exportado: total geral menos o desconto PIX.
func (a *Agregado) TotalAPagar() decimal.Decimal {
	return a.TotalGeral().Sub(a.DescontoPix())
}

// AplicarPix aplica o desconto PIX de 5% a uma parcela de medição já somada.
// Usado por quem reconstrói totais a partir de valores persistidos.
func AplicarPix(valorMedicao decimal.Decimal) decimal.Decimal {
	return valorMedicao.Mul(fatorPix)
}

// Alertas reúne os avisos não bloqueantes de todas as linhas de medição.
func (a *Agregado) Alertas() []string {
	var out []string
	for _, l := range a.LinhasMedicao() {
		if msg := l.Alerta(); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}
