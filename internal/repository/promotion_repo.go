package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"movietheater/internal/domain"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	var p domain.Promotion
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveAt returns promotions whose window covers the given moment.
func (r *PromotionRepository) ListActiveAt(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	var promos []domain.Promotion
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("start_date").
		Find(&promos).Error
	if err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *PromotionRepository) Update(ctx context.Context, p *domain.Promotion) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PromotionRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.Promotion{}).Where("id = ?", id).Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
