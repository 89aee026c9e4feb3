package promotion

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"movietheater/internal/domain"
	"movietheater/internal/repository"
)

type Service struct {
	promotions *repository.PromotionRepository
}

func NewService(promotions *repository.PromotionRepository) *Service {
	return &Service{promotions: promotions}
}

// Active returns promotions whose window covers now and that are not
// soft-deleted. Pure filter; nothing is mutated.
func (s *Service) Active(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	return s.promotions.ListActiveAt(ctx, now)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Promotion, error) {
	p, err := s.promotions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreatePromotionRequest) (*domain.Promotion, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrValidation
	}

	p := &domain.Promotion{
		Title:              req.Title,
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		DiscountPercentage: req.DiscountPercentage,
		Conditions:         req.Conditions,
		IsActive:           true,
	}
	if err := s.promotions.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdatePromotionRequest) (*domain.Promotion, error) {
	p, err := s.promotions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}
	if req.DiscountPercentage != nil {
		p.DiscountPercentage = *req.DiscountPercentage
	}
	if req.Conditions != "" {
		p.Conditions = req.Conditions
	}

	if p.EndDate.Before(p.StartDate) {
		return nil, ErrValidation
	}

	if err := s.promotions.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.promotions.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
