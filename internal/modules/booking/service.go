package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"movietheater/internal/domain"
	"movietheater/internal/queue"
)

// Service is the booking transition engine. Every state change runs inside a
// single storage transaction, so a balance debit can never outlive a failed
// booking write. The score debit itself is a guarded decrement
// (score = score - n WHERE score >= n), not check-then-write.
type Service struct {
	db     *gorm.DB
	events EventSink
}

// NewService builds the engine. events may be nil; publishing is then skipped.
func NewService(db *gorm.DB, events EventSink) *Service {
	return &Service{db: db, events: events}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if len(req.Seats) == 0 || req.TotalAmount < 0 {
		return nil, ErrValidation
	}
	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, ErrValidation
	}
	if _, err := time.Parse("15:04", req.ShowTime); err != nil {
		return nil, ErrValidation
	}

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var movie domain.Movie
		if err := tx.First(&movie, req.MovieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMovieNotFound
			}
			return err
		}
		if !movie.IsActive {
			return ErrMovieNotFound
		}

		var discount int64
		if req.PromotionID != nil {
			var promo domain.Promotion
			if err := tx.First(&promo, *req.PromotionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPromotionNotFound
				}
				return err
			}
			if !promo.ActiveAt(time.Now()) {
				return ErrPromotionInactive
			}
			discount = req.TotalAmount * promo.DiscountPercentage / 100
		}

		var scoreUsed int64
		if method == domain.PaymentScore {
			// 1 score unit == 1 currency unit, so paying by score costs the
			// gross amount in points.
			scoreUsed = req.TotalAmount

			res := tx.Model(&domain.User{}).
				Where("id = ? AND score >= ?", userID, scoreUsed).
				UpdateColumn("score", gorm.Expr("score - ?", scoreUsed))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientBalance
			}
		}

		nb := &domain.Booking{
			UserID:         userID,
			MovieID:        movie.ID,
			ShowDate:       req.ShowDate,
			ShowTime:       req.ShowTime,
			Seats:          req.Seats,
			TotalAmount:    req.TotalAmount,
			PaymentMethod:  method,
			PromotionID:    req.PromotionID,
			DiscountAmount: discount,
			FinalAmount:    req.TotalAmount - discount,
			ScoreUsed:      scoreUsed,
			Status:         domain.BookingPending,
		}
		if err := tx.Create(nb).Error; err != nil {
			return err
		}

		// Flat rebate on the gross amount, regardless of payment method
		// or applied discount.
		earned := domain.ScoreEarnedFor(req.TotalAmount)
		if earned > 0 {
			if err := tx.Model(&domain.User{}).Where("id = ?", userID).
				UpdateColumn("score", gorm.Expr("score + ?", earned)).Error; err != nil {
				return err
			}
		}
		nb.ScoreEarned = earned
		if err := tx.Model(&domain.Booking{}).Where("id = ?", nb.ID).
			Update("score_earned", earned).Error; err != nil {
			return err
		}

		b = nb
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, queue.QueueBookingCreated, queue.BookingCreatedEvent{
			BookingID:   b.ID,
			Reference:   b.Reference,
			UserID:      b.UserID,
			MovieID:     b.MovieID,
			FinalAmount: b.FinalAmount,
			ScoreUsed:   b.ScoreUsed,
			ScoreEarned: b.ScoreEarned,
			CreatedAt:   b.CreatedAt,
		})
	}

	return b, nil
}

// TransitionStatus moves a booking along the explicit transition table
// (pending→confirmed, pending→cancelled, confirmed→cancelled). Cancellation
// is terminal. Cancelling refunds the spent score in full; the earned rebate
// is deliberately kept by the user.
func (s *Service) TransitionStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, actorRole domain.UserRole) (*domain.Booking, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleEmployee {
		return nil, ErrForbidden
	}
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	var b domain.Booking
	var oldStatus domain.BookingStatus
	var refunded int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldStatus = b.Status
		if !domain.CanTransition(oldStatus, newStatus) {
			return ErrInvalidTransition
		}

		updates := map[string]any{"status": newStatus}
		if newStatus == domain.BookingCancelled {
			now := time.Now()
			updates["cancelled_at"] = &now
			b.CancelledAt = &now
		}

		// Guarded on the old status so a concurrent transition cannot
		// trigger a second refund.
		res := tx.Model(&domain.Booking{}).
			Where("id = ? AND status = ?", b.ID, oldStatus).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		b.Status = newStatus

		if newStatus == domain.BookingCancelled && b.ScoreUsed > 0 {
			if err := tx.Model(&domain.User{}).Where("id = ?", b.UserID).
				UpdateColumn("score", gorm.Expr("score + ?", b.ScoreUsed)).Error; err != nil {
				return err
			}
			refunded = b.ScoreUsed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, queue.QueueBookingStatusChanged, queue.BookingStatusChangedEvent{
			BookingID:      b.ID,
			Reference:      b.Reference,
			UserID:         b.UserID,
			OldStatus:      string(oldStatus),
			NewStatus:      string(newStatus),
			ScoreRefunded:  refunded,
			TransitionedAt: time.Now(),
		})
	}

	return &b, nil
}

// ListAll returns every booking with its user and movie, newest first.
func (s *Service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Movie").
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForUser returns the caller's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
