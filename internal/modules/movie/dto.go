package movie

import "time"

type ShowtimeInput struct {
	Date           time.Time `json:"date" binding:"required"`
	Time           string    `json:"time" binding:"required"`
	AvailableSeats int       `json:"available_seats" binding:"gte=0"`
}

type CreateMovieRequest struct {
	Title       string          `json:"title" binding:"required" validate:"required"`
	Description string          `json:"description" binding:"required" validate:"required"`
	Duration    int             `json:"duration" binding:"required,gt=0" validate:"required,gt=0"`
	ReleaseDate time.Time       `json:"release_date" binding:"required" validate:"required"`
	Genre       string          `json:"genre" binding:"required" validate:"required"`
	Director    string          `json:"director" binding:"required" validate:"required"`
	Cast        []string        `json:"cast"`
	PosterURL   string          `json:"poster_url"`
	TrailerURL  string          `json:"trailer_url"`
	Price       int64           `json:"price" binding:"gte=0" validate:"gte=0"`
	Showtimes   []ShowtimeInput `json:"showtimes" binding:"dive"`
}

type UpdateMovieRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" binding:"omitempty,gt=0"`
	ReleaseDate *time.Time      `json:"release_date"`
	Genre       string          `json:"genre"`
	Director    string          `json:"director"`
	Cast        []string        `json:"cast"`
	PosterURL   string          `json:"poster_url"`
	TrailerURL  string          `json:"trailer_url"`
	Price       *int64          `json:"price" binding:"omitempty"`
	Showtimes   []ShowtimeInput `json:"showtimes" binding:"dive"`
}

type UpdateShowtimesRequest struct {
	Showtimes []ShowtimeInput `json:"showtimes" binding:"required,dive"`
}
