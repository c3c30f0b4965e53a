package infra

// pdf.go — geração dos recibos em PDF com go-pdf/fpdf.
// Dois documentos A4:
//   - recibo de medição: tabelas de medição, bancada e bonificação, totais
//     com desconto PIX, observações, responsável e assinatura.
//   - relatório de estoque: contagem atual do razão de um cliente.

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bymen/internal/calc"
	"bymen/internal/model"

	"github.com/go-pdf/fpdf"
)

// GerarPdfMedicao escreve o recibo de uma medição finalizada em
// storagePath/medicao_{id}.pdf e devolve o caminho absoluto.
func GerarPdfMedicao(m *model.Medicao, clienteNome, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("medicao_%s.pdf", m.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252 — cobre acentos pt-BR

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Cabeçalho ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Bymen", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Recibo de Medição"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW/2, 6, tr("Cliente: "+clienteNome), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, calc.FormatarDataHora(m.DataHora), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// ── Medição ──────────────────────────────────────────────────────────────
	if len(m.Itens) > 0 {
		secao(pdf, tr, "Medição")
		cols := []colunaTabela{
			{tr("Produto"), contentW * 0.30, "L"},
			{tr("Est."), contentW * 0.10, "C"},
			{tr("Vend."), contentW * 0.10, "C"},
			{tr("Rep."), contentW * 0.10, "C"},
			{tr("Ret."), contentW * 0.10, "C"},
			{tr("Novo"), contentW * 0.10, "C"},
			{tr("Valor"), contentW * 0.20, "R"},
		}
		cabecalhoTabela(pdf, cols)
		pdf.SetFont("Helvetica", "", 8)
		for _, item := range m.Itens {
			linhaTabela(pdf, cols, []string{
				tr(nomeProduto(item.Nome, item.Linha, item.Capacidade)),
				calc.FormatarNumero(item.EstoqueAtual),
				calc.FormatarNumero(item.Vendidos),
				calc.FormatarNumero(item.Repostos),
				calc.FormatarNumero(item.Retirados),
				calc.FormatarNumero(item.NovoEstoque),
				tr(calc.FormatarBRL(item.Valor)),
			})
		}
		pdf.Ln(3)
	}

	var bancada, bonus []model.ItemBancada
	for _, item := range m.Bancada {
		if item.Bonificacao {
			bonus = append(bonus, item)
		} else {
			bancada = append(bancada, item)
		}
	}

	// ── Bancada ──────────────────────────────────────────────────────────────
	if len(bancada) > 0 {
		secao(pdf, tr, "Bancada")
		cols := []colunaTabela{
			{tr("Produto"), contentW * 0.50, "L"},
			{tr("Qtd"), contentW * 0.20, "C"},
			{tr("Valor"), contentW * 0.30, "R"},
		}
		cabecalhoTabela(pdf, cols)
		pdf.SetFont("Helvetica", "", 8)
		for _, item := range bancada {
			linhaTabela(pdf, cols, []string{
				tr(nomeProduto(item.Nome, item.Linha, item.Capacidade)),
				calc.FormatarNumero(item.Quantidade),
				tr(calc.FormatarBRL(item.Valor)),
			})
		}
		pdf.Ln(3)
	}

	// ── Bonificação — sem coluna de valor ────────────────────────────────────
	if len(bonus) > 0 {
		secao(pdf, tr, "Bonificação")
		cols := []colunaTabela{
			{tr("Produto"), contentW * 0.70, "L"},
			{tr("Qtd"), contentW * 0.30, "C"},
		}
		cabecalhoTabela(pdf, cols)
		pdf.SetFont("Helvetica", "", 8)
		for _, item := range bonus {
			linhaTabela(pdf, cols, []string{
				tr(nomeProduto(item.Nome, item.Linha, item.Capacidade)),
				calc.FormatarNumero(item.Quantidade),
			})
		}
		pdf.Ln(3)
	}

	// ── Totais ───────────────────────────────────────────────────────────────
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	linhaTotal(pdf, tr, contentW, "Valor da medição:", calc.FormatarBRL(m.ValorMedicao), false)
	linhaTotal(pdf, tr, contentW, "Valor da bancada:", calc.FormatarBRL(m.ValorBancada), false)
	linhaTotal(pdf, tr, contentW, "Total geral:", calc.FormatarBRL(m.TotalGeral), false)

	if m.PagamentoPix {
		pix := calc.AplicarPix(m.ValorMedicao)
		desconto := m.ValorMedicao.Sub(pix)
		linhaTotal(pdf, tr, contentW, "Medição via PIX (5% desc.):", calc.FormatarBRL(pix), false)
		linhaTotal(pdf, tr, contentW, "Desconto PIX:", "-"+calc.FormatarBRL(desconto), false)
		linhaTotal(pdf, tr, contentW, "TOTAL A PAGAR:", calc.FormatarBRL(m.TotalGeral.Sub(desconto)), true)
	} else {
		linhaTotal(pdf, tr, contentW, "TOTAL A PAGAR:", calc.FormatarBRL(m.TotalGeral), true)
	}

	if m.QuantidadeBonus > 0 {
		linhaTotal(pdf, tr, contentW, "Itens bonificados:", calc.FormatarNumero(m.QuantidadeBonus), false)
	}

	// ── Observações / responsável / assinatura ───────────────────────────────
	if m.Observacoes != nil && *m.Observacoes != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, tr("Observações:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, tr(*m.Observacoes), "", "L", false)
	}
	if m.Responsavel != nil && *m.Responsavel != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, tr("Responsável: "+*m.Responsavel), "", 1, "L", false, 0, "")
	}
	if m.AssinaturaPNG != nil && *m.AssinaturaPNG != "" {
		if err := desenharAssinatura(pdf, *m.AssinaturaPNG); err != nil {
			// Assinatura corrompida não invalida o recibo.
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(contentW, 5, tr("(assinatura ilegível)"), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// LinhaEstoquePdf é uma posição do relatório de estoque.
type LinhaEstoquePdf struct {
	Nome       string
	Linha      string
	Capacidade int
	Quantidade float64
}

// GerarPdfEstoque escreve o relatório de contagem de estoque de um cliente em
// storagePath/estoque_{clienteID}_{timestamp}.pdf.
func GerarPdfEstoque(clienteID, clienteNome, responsavel string, itens []LinhaEstoquePdf, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("estoque_%s_%s.pdf", clienteID, time.Now().Format("20060102_150405")))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Bymen", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Relatório de Estoque"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr("Cliente: "+clienteNome), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	cols := []colunaTabela{
		{tr("Produto"), contentW * 0.70, "L"},
		{tr("Estoque atual"), contentW * 0.30, "C"},
	}
	cabecalhoTabela(pdf, cols)
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range itens {
		linhaTabela(pdf, cols, []string{
			tr(nomeProduto(item.Nome, item.Linha, item.Capacidade)),
			calc.FormatarNumero(item.Quantidade),
		})
	}

	if responsavel != "" {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, tr("Responsável: "+responsavel), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type colunaTabela struct {
	titulo string
	w      float64
	align  string
}

func secao(pdf *fpdf.Fpdf, tr func(string) string, titulo string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr(titulo), "", 1, "L", false, 0, "")
}

func cabecalhoTabela(pdf *fpdf.Fpdf, cols []colunaTabela) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.w, 6, c.titulo, "B", ln, c.align, false, 0, "")
	}
}

func linhaTabela(pdf *fpdf.Fpdf, cols []colunaTabela, valores []string) {
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.w, 5.5, valores[i], "", ln, c.align, false, 0, "")
	}
}

func linhaTotal(pdf *fpdf.Fpdf, tr func(string) string, contentW float64, label, valor string, destaque bool) {
	if destaque {
		pdf.SetFont("Helvetica", "B", 11)
	} else {
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.CellFormat(contentW*0.7, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 6, tr(valor), "", 1, "R", false, 0, "")
}

func nomeProduto(nome, linha string, capacidade int) string {
	return fmt.Sprintf("%s %s %d%s", nome, linha, capacidade, calc.SufixoUnidade(nome))
}

// desenharAssinatura decodifica a data URL base64 capturada no app e a
// incorpora como imagem PNG no rodapé do recibo.
func desenharAssinatura(pdf *fpdf.Fpdf, dataURL string) error {
	raw := dataURL
	if idx := strings.Index(raw, ","); idx >= 0 {
		raw = raw[idx+1:]
	}
	img, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("pdf: decode assinatura: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("assinatura", opts, bytes.NewReader(img))
	if pdf.Err() {
		return fmt.Errorf("pdf: register assinatura: %v", pdf.Error())
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Assinatura:", "", 1, "L", false, 0, "")
	pdf.ImageOptions("assinatura", 15, pdf.GetY(), 60, 0, true, opts, 0, "")
	return nil
}
