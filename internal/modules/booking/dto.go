package booking

import "time"

type CreateBookingRequest struct {
	MovieID       int64     `json:"movie_id" binding:"required"`
	ShowDate      time.Time `json:"show_date" binding:"required"`
	ShowTime      string    `json:"show_time" binding:"required"`
	Seats         []string  `json:"seats" binding:"required,min=1"`
	TotalAmount   int64     `json:"total_amount" binding:"gte=0"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=cash score"`
	PromotionID   *int64    `json:"promotion_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}
