package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados do recibo PDF de uma medição. O registro em si é imutável após
// a finalização; só o anexo do PDF muda de estado.
const (
	PdfPendente = "pendente"
	PdfGerado   = "gerado"
	PdfErro     = "erro"
)

// Medicao é o registro imutável de uma visita finalizada: snapshot das três
// coleções de linhas e dos totais no momento do fechamento. Campos de
// produto são copiados por valor — mudanças de preço no catálogo nunca
// alteram medições históricas.
type Medicao struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID    string    `gorm:"index;not null"`
	DataHora     time.Time `gorm:"not null"`
	ValorMedicao decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValorBancada decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// TotalGeral = ValorMedicao + ValorBancada, sem desconto.
	TotalGeral      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PagamentoPix    bool            `gorm:"not null;default:false"`
	QuantidadeBonus float64         `gorm:"not null;default:0"`
	Responsavel     *string
	Observacoes     *string
	AssinaturaPNG   *string `gorm:"type:text"` // data URL base64
	PdfPath         *string
	PdfEstado       string `gorm:"not null;default:'pendente'"`
	PdfTentativas   int    `gorm:"not null;default:0"`
	ProximaTentativaPdf *time.Time
	CreatedAt           time.Time

	Itens   []MedicaoItem `gorm:"foreignKey:MedicaoID"`
	Bancada []ItemBancada `gorm:"foreignKey:MedicaoID"`
}

// TableName overrides GORM's default pluralization (medicaos → medicoes).
func (Medicao) TableName() string { return "medicoes" }

// MedicaoItem é o snapshot de uma linha da aba medição, com as seis
// grandezas reconciliadas por produto.
type MedicaoItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicaoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Posicao   int       `gorm:"not null"` // ordem de catálogo no momento do snapshot
	ProdutoID string    `gorm:"not null"`

	Nome          string `gorm:"not null"`
	Linha         string
	Capacidade    int
	Preco         decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PrecoSugestao *decimal.Decimal `gorm:"type:decimal(10,2)"`

	EstoqueAtual   float64 `gorm:"not null"`
	Vendidos       float64 `gorm:"not null"`
	Repostos       float64 `gorm:"not null"`
	NaoVendidos    float64 `gorm:"not null"`
	Retirados      float64 `gorm:"not null"`
	NovoEstoque    float64 `gorm:"not null"`
	RetiradaManual bool    `gorm:"not null;default:false"`
	Valor          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (MedicaoItem) TableName() string { return "medicao_itens" }

// ItemBancada cobre as abas bancada e bonificação: quantidade × preço, sem
// reconciliação. Bonificacao=true marca linhas dadas de graça — o valor é
// calculado para agregação interna mas suprimido na exibição.
type ItemBancada struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicaoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Posicao   int       `gorm:"not null"`
	ProdutoID string    `gorm:"not null"`

	Nome       string `gorm:"not null"`
	Linha      string
	Capacidade int
	Preco      decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Quantidade  float64         `gorm:"not null"`
	Valor       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Bonificacao bool            `gorm:"not null;default:false"`
}

func (ItemBancada) TableName() string { return "itens_bancada" }
