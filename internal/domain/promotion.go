package domain

import "time"

type Promotion struct {
	ID                 int64     `json:"id" gorm:"primaryKey"`
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description" gorm:"type:text"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required"`
	DiscountPercentage int64     `json:"discount_percentage" validate:"gte=0,lte=100"`
	Conditions         string    `json:"conditions,omitempty" gorm:"type:text"`
	IsActive           bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ActiveAt reports whether the promotion can be applied at the given moment.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return p.IsActive && !p.StartDate.After(now) && !p.EndDate.Before(now)
}
