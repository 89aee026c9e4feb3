package movie

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"movietheater/internal/domain"
	"movietheater/internal/repository"
)

type Service struct {
	movies *repository.MovieRepository
}

func NewService(movies *repository.MovieRepository) *Service {
	return &Service{movies: movies}
}

// List returns the public catalog; soft-deleted movies are excluded.
func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, req CreateMovieRequest) (*domain.Movie, error) {
	showtimes, err := toShowtimes(req.Showtimes)
	if err != nil {
		return nil, err
	}

	m := &domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		ReleaseDate: req.ReleaseDate,
		Genre:       req.Genre,
		Director:    req.Director,
		Cast:        req.Cast,
		PosterURL:   req.PosterURL,
		TrailerURL:  req.TrailerURL,
		Price:       req.Price,
		Showtimes:   showtimes,
		IsActive:    true,
	}
	if err := s.movies.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMovieRequest) (*domain.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		m.Title = req.Title
	}
	if req.Description != "" {
		m.Description = req.Description
	}
	if req.Duration > 0 {
		m.Duration = req.Duration
	}
	if req.ReleaseDate != nil {
		m.ReleaseDate = *req.ReleaseDate
	}
	if req.Genre != "" {
		m.Genre = req.Genre
	}
	if req.Director != "" {
		m.Director = req.Director
	}
	if req.Cast != nil {
		m.Cast = req.Cast
	}
	if req.PosterURL != "" {
		m.PosterURL = req.PosterURL
	}
	if req.TrailerURL != "" {
		m.TrailerURL = req.TrailerURL
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		m.Price = *req.Price
	}
	if req.Showtimes != nil {
		showtimes, err := toShowtimes(req.Showtimes)
		if err != nil {
			return nil, err
		}
		m.Showtimes = showtimes
	}

	if err := s.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateShowtimes(ctx context.Context, id int64, req UpdateShowtimesRequest) (*domain.Movie, error) {
	showtimes, err := toShowtimes(req.Showtimes)
	if err != nil {
		return nil, err
	}

	m, err := s.movies.UpdateShowtimes(ctx, id, showtimes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.movies.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func toShowtimes(inputs []ShowtimeInput) ([]domain.Showtime, error) {
	showtimes := make([]domain.Showtime, 0, len(inputs))
	for _, in := range inputs {
		if _, err := time.Parse("15:04", in.Time); err != nil {
			return nil, ErrValidation
		}
		if in.AvailableSeats < 0 {
			return nil, ErrValidation
		}
		showtimes = append(showtimes, domain.Showtime{
			Date:           in.Date,
			Time:           in.Time,
			AvailableSeats: in.AvailableSeats,
		})
	}
	return showtimes, nil
}
