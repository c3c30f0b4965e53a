package repository

import (
	"context"

	"bymen/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository persists only user-created clients. The built-in
// barbershops live in the catalog package and are merged at service level.
type ClienteRepository interface {
	Save(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id string) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Delete(ctx context.Context, id string) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Save(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cliente{}).Error
}
