package promotion

import "time"

type CreatePromotionRequest struct {
	Title              string    `json:"title" binding:"required" validate:"required"`
	Description        string    `json:"description" binding:"required" validate:"required"`
	StartDate          time.Time `json:"start_date" binding:"required" validate:"required"`
	EndDate            time.Time `json:"end_date" binding:"required" validate:"required"`
	DiscountPercentage int64     `json:"discount_percentage" binding:"gte=0,lte=100" validate:"gte=0,lte=100"`
	Conditions         string    `json:"conditions"`
}

type UpdatePromotionRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	DiscountPercentage *int64     `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
	Conditions         string     `json:"conditions"`
}
