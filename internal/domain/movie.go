package domain

import "time"

// Showtime is a single screening slot attached to a movie. Time is "HH:MM".
type Showtime struct {
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	AvailableSeats int       `json:"available_seats"`
}

type Movie struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" gorm:"type:text"`
	Duration    int        `json:"duration" validate:"required,gt=0"`
	ReleaseDate time.Time  `json:"release_date"`
	Genre       string     `json:"genre"`
	Director    string     `json:"director"`
	Cast        []string   `json:"cast,omitempty" gorm:"serializer:json;type:json"`
	PosterURL   string     `json:"poster_url,omitempty"`
	TrailerURL  string     `json:"trailer_url,omitempty"`
	Price       int64      `json:"price" validate:"gte=0"`
	Showtimes   []Showtime `json:"showtimes" gorm:"serializer:json;type:json"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
