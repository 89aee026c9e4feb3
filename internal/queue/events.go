package queue

import "time"

const (
	QueueBookingCreated       = "booking.created"
	QueueBookingStatusChanged = "booking.status_changed"
)

type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Reference   string    `json:"reference"`
	UserID      int64     `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	FinalAmount int64     `json:"final_amount"`
	ScoreUsed   int64     `json:"score_used"`
	ScoreEarned int64     `json:"score_earned"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingStatusChangedEvent struct {
	BookingID      int64     `json:"booking_id"`
	Reference      string    `json:"reference"`
	UserID         int64     `json:"user_id"`
	OldStatus      string    `json:"old_status"`
	NewStatus      string    `json:"new_status"`
	ScoreRefunded  int64     `json:"score_refunded"`
	TransitionedAt time.Time `json:"transitioned_at"`
}
