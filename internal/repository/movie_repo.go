package repository

import (
	"context"

	"gorm.io/gorm"

	"movietheater/internal/domain"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	var m domain.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActive returns the public catalog: soft-deleted movies are hidden.
func (r *MovieRepository) ListActive(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("release_date desc").Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MovieRepository) UpdateShowtimes(ctx context.Context, id int64, showtimes []domain.Showtime) (*domain.Movie, error) {
	var m domain.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	m.Showtimes = showtimes
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// SoftDelete flags the movie inactive instead of removing the row.
func (r *MovieRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.Movie{}).Where("id = ?", id).Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
