package repository

import (
	"context"
	"time"

	"bymen/internal/dto"
	"bymen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicaoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.Medicao) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medicao, error)
	List(ctx context.Context, filter dto.MedicaoFilter) ([]model.Medicao, int64, error)

	// PDF attachment lifecycle, driven by the worker.
	MarcarPdfGerado(ctx context.Context, id uuid.UUID, path string) error
	MarcarPdfErro(ctx context.Context, id uuid.UUID, proximaTentativa time.Time) error
	FindPdfPendentes(ctx context.Context, maxTentativas, limit int) ([]model.Medicao, error)

	// Report roll-ups.
	TotaisPorCliente(ctx context.Context) ([]dto.TotalPorCliente, error)
	TotaisPorMes(ctx context.Context) ([]dto.TotalPorMes, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type medicaoRepo struct{ db *gorm.DB }

func NewMedicaoRepository(db *gorm.DB) MedicaoRepository { return &medicaoRepo{db: db} }

func (r *medicaoRepo) DB() *gorm.DB { return r.db }

func (r *medicaoRepo) Create(ctx context.Context, tx *gorm.DB, m *model.Medicao) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *medicaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medicao, error) {
	var m model.Medicao
	err := r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Preload("Bancada", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		First(&m, id).Error
	return &m, err
}

func (r *medicaoRepo) List(ctx context.Context, filter dto.MedicaoFilter) ([]model.Medicao, int64, error) {
	var medicoes []model.Medicao
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Medicao{})

	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.De != "" {
		q = q.Where("DATE(data_hora) >= ?", filter.De)
	}
	if filter.Ate != "" {
		q = q.Where("DATE(data_hora) <= ?", filter.Ate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Preload("Bancada", func(db *gorm.DB) *gorm.DB { return db.Order("posicao ASC") }).
		Order("data_hora DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&medicoes).Error

	return medicoes, total, err
}

func (r *medicaoRepo) MarcarPdfGerado(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Medicao{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"pdf_path":              path,
			"pdf_estado":            model.PdfGerado,
			"proxima_tentativa_pdf": nil,
		}).Error
}

func (r *medicaoRepo) MarcarPdfErro(ctx context.Context, id uuid.UUID, proximaTentativa time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Medicao{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"pdf_estado":            model.PdfErro,
			"pdf_tentativas":        gorm.Expr("pdf_tentativas + 1"),
			"proxima_tentativa_pdf": proximaTentativa,
		}).Error
}

func (r *medicaoRepo) FindPdfPendentes(ctx context.Context, maxTentativas, limit int) ([]model.Medicao, error) {
	var medicoes []model.Medicao
	err := r.db.WithContext(ctx).
		Where("pdf_estado IN ? AND pdf_tentativas < ? AND (proxima_tentativa_pdf IS NULL OR proxima_tentativa_pdf <= NOW())",
			[]string{model.PdfPendente, model.PdfErro}, maxTentativas).
		Order("data_hora ASC").
		Limit(limit).
		Find(&medicoes).Error
	return medicoes, err
}

func (r *medicaoRepo) TotaisPorCliente(ctx context.Context) ([]dto.TotalPorCliente, error) {
	var totais []dto.TotalPorCliente
	err := r.db.WithContext(ctx).Model(&model.Medicao{}).
		Select("cliente_id, COUNT(*) AS medicoes, SUM(total_geral) AS total").
		Group("cliente_id").
		Order("total DESC").
		Scan(&totais).Error
	return totais, err
}

func (r *medicaoRepo) TotaisPorMes(ctx context.Context) ([]dto.TotalPorMes, error) {
	var totais []dto.TotalPorMes
	err := r.db.WithContext(ctx).Model(&model.Medicao{}).
		Select("TO_CHAR(data_hora, 'YYYY-MM') AS mes, SUM(total_geral) AS total").
		Group("TO_CHAR(data_hora, 'YYYY-MM')").
		Order("mes DESC").
		Scan(&totais).Error
	return totais, err
}
