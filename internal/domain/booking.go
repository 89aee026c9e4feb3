package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentScore PaymentMethod = "score"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentScore
}

// ScoreRate is the flat loyalty rebate earned on the gross booking amount.
// One score unit is worth exactly one currency unit.
const ScoreRate = 0.10

// ScoreEarnedFor returns the loyalty score granted for a booking of the
// given gross amount, independent of payment method or discounts.
func ScoreEarnedFor(totalAmount int64) int64 {
	return int64(math.Floor(float64(totalAmount) * ScoreRate))
}

// bookingTransitions is the allowed status transition table. Cancellation
// is terminal, so a cancelled booking can never be refunded twice.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	Reference      string        `json:"reference" gorm:"size:36;uniqueIndex"`
	UserID         int64         `json:"user_id" gorm:"not null;index"`
	MovieID        int64         `json:"movie_id" gorm:"not null;index"`
	ShowDate       time.Time     `json:"show_date"`
	ShowTime       string        `json:"show_time" gorm:"size:5"`
	Seats          []string      `json:"seats" gorm:"serializer:json;type:json"`
	TotalAmount    int64         `json:"total_amount"`
	PaymentMethod  PaymentMethod `json:"payment_method" gorm:"size:16"`
	PromotionID    *int64        `json:"promotion_id,omitempty"`
	DiscountAmount int64         `json:"discount_amount"`
	FinalAmount    int64         `json:"final_amount"`
	ScoreUsed      int64         `json:"score_used"`
	ScoreEarned    int64         `json:"score_earned"`
	Status         BookingStatus `json:"status" gorm:"size:16;not null;default:pending;index"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	return nil
}
