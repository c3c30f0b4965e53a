package repository

import (
	"context"

	"bymen/internal/model"

	"gorm.io/gorm"
)

// EstoqueRepository covers the two ledgers: the per-client ledger
// (estoque_clientes, overwritten whole on every finalized visit) and the
// global movement journal (movimentos_estoque, append-only).
type EstoqueRepository interface {
	// SobrescreverClienteTx replaces every row passed for the client inside
	// the surrounding transaction. Rows absent from itens are left untouched.
	SobrescreverClienteTx(tx *gorm.DB, clienteID string, itens []model.EstoqueCliente) error
	FindByCliente(ctx context.Context, clienteID string) ([]model.EstoqueCliente, error)

	CreateMovimentoTx(tx *gorm.DB, mov *model.MovimentoEstoque) error
	ListMovimentos(ctx context.Context, produtoID string, limit int) ([]model.MovimentoEstoque, error)

	DB() *gorm.DB
}

type estoqueRepo struct{ db *gorm.DB }

func NewEstoqueRepository(db *gorm.DB) EstoqueRepository { return &estoqueRepo{db: db} }

func (r *estoqueRepo) DB() *gorm.DB { return r.db }

func (r *estoqueRepo) SobrescreverClienteTx(tx *gorm.DB, clienteID string, itens []model.EstoqueCliente) error {
	for i := range itens {
		itens[i].ClienteID = clienteID
		if err := tx.Save(&itens[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *estoqueRepo) FindByCliente(ctx context.Context, clienteID string) ([]model.EstoqueCliente, error) {
	var itens []model.EstoqueCliente
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Find(&itens).Error
	return itens, err
}

func (r *estoqueRepo) CreateMovimentoTx(tx *gorm.DB, mov *model.MovimentoEstoque) error {
	return tx.Create(mov).Error
}

func (r *estoqueRepo) ListMovimentos(ctx context.Context, produtoID string, limit int) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	q := r.db.WithContext(ctx).Model(&model.MovimentoEstoque{})
	if produtoID != "" {
		q = q.Where("produto_id = ?", produtoID)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
