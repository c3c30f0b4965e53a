package repository

import (
	"context"

	"bymen/internal/dto"
	"bymen/internal/model"

	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for catalog products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProdutoRepository interface {
	Upsert(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error)

	// Used inside transactions — callers must pass the tx instance.
	UpdateEstoqueTx(tx *gorm.DB, id string, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) DB() *gorm.DB { return r.db }

func (r *produtoRepo) Upsert(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Where("id = ? AND ativo = true", id).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error) {
	var produtos []model.Produto

	q := r.db.WithContext(ctx).Model(&model.Produto{}).Where("ativo = true")

	// Tipo filter: "revenda" | "bancada" | "all" (default: all)
	if filter.Tipo != "" && filter.Tipo != "all" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Linha != "" {
		q = q.Where("linha = ?", filter.Linha)
	}
	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}

	// Length-first keeps p2 before p10 without zero-padding the IDs.
	err := q.Order("tipo ASC, LENGTH(id) ASC, id ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) UpdateEstoqueTx(tx *gorm.DB, id string, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}
