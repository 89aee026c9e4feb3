package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"movietheater/internal/database"
	"movietheater/internal/domain"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewService(db, nil), db
}

func createTestUser(t *testing.T, db *gorm.DB, score int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     fmt.Sprintf("user_%d", time.Now().UnixNano()),
		FullName:     "Test Member",
		Email:        fmt.Sprintf("u%d@test.local", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         domain.RoleMember,
		Score:        score,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func createTestMovie(t *testing.T, db *gorm.DB, active bool) *domain.Movie {
	t.Helper()
	m := &domain.Movie{
		Title:       "Test Feature",
		Duration:    120,
		ReleaseDate: time.Now(),
		Price:       100,
		Showtimes: []domain.Showtime{
			{Date: time.Now().AddDate(0, 0, 1), Time: "19:30", AvailableSeats: 50},
		},
		IsActive: active,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create movie: %v", err)
	}
	return m
}

func userScore(t *testing.T, db *gorm.DB, userID int64) int64 {
	t.Helper()
	var u domain.User
	if err := db.First(&u, userID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	return u.Score
}

func cashRequest(movieID int64, total int64) CreateBookingRequest {
	return CreateBookingRequest{
		MovieID:       movieID,
		ShowDate:      time.Now().AddDate(0, 0, 1),
		ShowTime:      "19:30",
		Seats:         []string{"A1", "A2"},
		TotalAmount:   total,
		PaymentMethod: "cash",
	}
}

func TestCreateBookingCashEarnsFlatRebate(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	b, err := svc.CreateBooking(context.Background(), user.ID, cashRequest(movie.ID, 255))
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if b.Status != domain.BookingPending {
		t.Fatalf("expected pending status, got %s", b.Status)
	}
	if b.ScoreUsed != 0 {
		t.Fatalf("expected zero score used for cash, got %d", b.ScoreUsed)
	}
	if b.ScoreEarned != 25 {
		t.Fatalf("expected 25 score earned on 255, got %d", b.ScoreEarned)
	}
	if b.FinalAmount != 255 {
		t.Fatalf("expected final amount 255, got %d", b.FinalAmount)
	}
	if b.Reference == "" {
		t.Fatal("expected a generated booking reference")
	}
	if got := userScore(t, db, user.ID); got != 25 {
		t.Fatalf("expected user score 25, got %d", got)
	}
}

func TestCreateBookingScorePaymentDebitsAndEarns(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 150)
	movie := createTestMovie(t, db, true)

	req := cashRequest(movie.ID, 100)
	req.PaymentMethod = "score"

	b, err := svc.CreateBooking(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if b.ScoreUsed != 100 {
		t.Fatalf("expected score used 100, got %d", b.ScoreUsed)
	}
	if b.ScoreEarned != 10 {
		t.Fatalf("expected score earned 10, got %d", b.ScoreEarned)
	}
	// 150 - 100 spent + 10 earned
	if got := userScore(t, db, user.ID); got != 60 {
		t.Fatalf("expected user score 60, got %d", got)
	}
}

func TestCreateBookingInsufficientScoreLeavesBalanceUntouched(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 50)
	movie := createTestMovie(t, db, true)

	req := cashRequest(movie.ID, 100)
	req.PaymentMethod = "score"

	_, err := svc.CreateBooking(context.Background(), user.ID, req)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if got := userScore(t, db, user.ID); got != 50 {
		t.Fatalf("expected score unchanged at 50, got %d", got)
	}

	var count int64
	db.Model(&domain.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no booking rows, got %d", count)
	}
}

func TestCreateBookingAppliesActivePromotion(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	promo := &domain.Promotion{
		Title:              "Opening Week",
		DiscountPercentage: 20,
		StartDate:          time.Now().AddDate(0, 0, -1),
		EndDate:            time.Now().AddDate(0, 0, 1),
		IsActive:           true,
	}
	if err := db.Create(promo).Error; err != nil {
		t.Fatalf("failed to create promotion: %v", err)
	}

	req := cashRequest(movie.ID, 100)
	req.PromotionID = &promo.ID

	b, err := svc.CreateBooking(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if b.DiscountAmount != 20 {
		t.Fatalf("expected discount 20, got %d", b.DiscountAmount)
	}
	if b.FinalAmount != 80 {
		t.Fatalf("expected final amount 80, got %d", b.FinalAmount)
	}
	// rebate is computed on the gross amount, not the discounted one
	if b.ScoreEarned != 10 {
		t.Fatalf("expected score earned 10, got %d", b.ScoreEarned)
	}
}

func TestCreateBookingRejectsExpiredPromotion(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	promo := &domain.Promotion{
		Title:              "Last Summer",
		DiscountPercentage: 30,
		StartDate:          time.Now().AddDate(0, -2, 0),
		EndDate:            time.Now().AddDate(0, -1, 0),
		IsActive:           true,
	}
	if err := db.Create(promo).Error; err != nil {
		t.Fatalf("failed to create promotion: %v", err)
	}

	req := cashRequest(movie.ID, 100)
	req.PromotionID = &promo.ID

	_, err := svc.CreateBooking(context.Background(), user.ID, req)
	if !errors.Is(err, ErrPromotionInactive) {
		t.Fatalf("expected ErrPromotionInactive, got %v", err)
	}
}

func TestCreateBookingUnknownPromotion(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	missing := int64(4242)
	req := cashRequest(movie.ID, 100)
	req.PromotionID = &missing

	_, err := svc.CreateBooking(context.Background(), user.ID, req)
	if !errors.Is(err, ErrPromotionNotFound) {
		t.Fatalf("expected ErrPromotionNotFound, got %v", err)
	}
}

func TestCreateBookingRejectsInactiveMovie(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, false)

	_, err := svc.CreateBooking(context.Background(), user.ID, cashRequest(movie.ID, 100))
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}

	_, err = svc.CreateBooking(context.Background(), user.ID, cashRequest(9999, 100))
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound for missing movie, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	noSeats := cashRequest(movie.ID, 100)
	noSeats.Seats = nil
	if _, err := svc.CreateBooking(context.Background(), user.ID, noSeats); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty seats, got %v", err)
	}

	badMethod := cashRequest(movie.ID, 100)
	badMethod.PaymentMethod = "card"
	if _, err := svc.CreateBooking(context.Background(), user.ID, badMethod); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown payment method, got %v", err)
	}

	badTime := cashRequest(movie.ID, 100)
	badTime.ShowTime = "7pm"
	if _, err := svc.CreateBooking(context.Background(), user.ID, badTime); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed show time, got %v", err)
	}

	negative := cashRequest(movie.ID, -5)
	if _, err := svc.CreateBooking(context.Background(), user.ID, negative); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative amount, got %v", err)
	}
}

func TestTransitionConfirmThenCancelRefundsSpentScore(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 200)
	movie := createTestMovie(t, db, true)

	req := cashRequest(movie.ID, 100)
	req.PaymentMethod = "score"
	b, err := svc.CreateBooking(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	// 200 - 100 + 10
	if got := userScore(t, db, user.ID); got != 110 {
		t.Fatalf("expected score 110 after booking, got %d", got)
	}

	confirmed, err := svc.TransitionStatus(context.Background(), b.ID, domain.BookingConfirmed, domain.RoleEmployee)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if confirmed.Status != domain.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	cancelled, err := svc.TransitionStatus(context.Background(), b.ID, domain.BookingCancelled, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}
	// only the spent score comes back; the earned rebate stays
	if got := userScore(t, db, user.ID); got != 210 {
		t.Fatalf("expected score 210 after refund, got %d", got)
	}
}

func TestCancelCashBookingLeavesScoreUnchanged(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	b, err := svc.CreateBooking(context.Background(), user.ID, cashRequest(movie.ID, 100))
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if got := userScore(t, db, user.ID); got != 10 {
		t.Fatalf("expected score 10 after cash booking, got %d", got)
	}

	if _, err := svc.TransitionStatus(context.Background(), b.ID, domain.BookingCancelled, domain.RoleAdmin); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if got := userScore(t, db, user.ID); got != 10 {
		t.Fatalf("expected score unchanged at 10, got %d", got)
	}
}

func TestCancelledBookingIsTerminal(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 200)
	movie := createTestMovie(t, db, true)

	req := cashRequest(movie.ID, 100)
	req.PaymentMethod = "score"
	b, err := svc.CreateBooking(context.Background(), user.ID, req)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if _, err := svc.TransitionStatus(context.Background(), b.ID, domain.BookingCancelled, domain.RoleAdmin); err != nil {
		t.Fatalf("first cancel returned error: %v", err)
	}
	scoreAfterCancel := userScore(t, db, user.ID)

	// a second cancel must neither succeed nor refund again
	_, err = svc.TransitionStatus(context.Background(), b.ID, domain.BookingCancelled, domain.RoleAdmin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second cancel, got %v", err)
	}
	if got := userScore(t, db, user.ID); got != scoreAfterCancel {
		t.Fatalf("expected score unchanged at %d, got %d", scoreAfterCancel, got)
	}

	_, err = svc.TransitionStatus(context.Background(), b.ID, domain.BookingConfirmed, domain.RoleAdmin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition reviving cancelled booking, got %v", err)
	}
}

func TestTransitionRejectsUnknownBookingAndBadInput(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.TransitionStatus(context.Background(), 9999, domain.BookingConfirmed, domain.RoleAdmin)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.TransitionStatus(context.Background(), 1, domain.BookingStatus("archived"), domain.RoleAdmin)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTransitionForbiddenForMembers(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	b, err := svc.CreateBooking(context.Background(), user.ID, cashRequest(movie.ID, 100))
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	_, err = svc.TransitionStatus(context.Background(), b.ID, domain.BookingConfirmed, domain.RoleMember)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestConcurrentScorePaymentsNeverOverdraw(t *testing.T) {
	svc, db := setupTestService(t)
	user := createTestUser(t, db, 100)
	movie := createTestMovie(t, db, true)

	req := cashRequest(movie.ID, 100)
	req.PaymentMethod = "score"

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), user.ID, req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}
	if successes > 1 {
		t.Fatalf("expected at most one successful booking, got %d", successes)
	}

	got := userScore(t, db, user.ID)
	if got < 0 {
		t.Fatalf("score went negative: %d", got)
	}
	// each success spends 100 and earns 10
	want := 100 - int64(successes)*90
	if got != want {
		t.Fatalf("expected score %d after %d successes, got %d", want, successes, got)
	}
}

func TestListForUserReturnsOwnBookingsNewestFirst(t *testing.T) {
	svc, db := setupTestService(t)
	alice := createTestUser(t, db, 0)
	bob := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	if _, err := svc.CreateBooking(context.Background(), alice.ID, cashRequest(movie.ID, 100)); err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), bob.ID, cashRequest(movie.ID, 200)); err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	mine, err := svc.ListForUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(mine))
	}
	if mine[0].UserID != alice.ID {
		t.Fatalf("expected booking owned by %d, got %d", alice.ID, mine[0].UserID)
	}
	if mine[0].Movie == nil {
		t.Fatal("expected movie to be preloaded")
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
	if all[0].User == nil {
		t.Fatal("expected user to be preloaded")
	}
}

type capturingSink struct {
	mu     sync.Mutex
	queues []string
}

func (c *capturingSink) Publish(_ context.Context, queueName string, _ any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queues = append(c.queues, queueName)
	return nil
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	svc, db := setupTestService(t)
	sink := &capturingSink{}
	svc.events = sink

	user := createTestUser(t, db, 0)
	movie := createTestMovie(t, db, true)

	b, err := svc.CreateBooking(context.Background(), user.ID, cashRequest(movie.ID, 100))
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if _, err := svc.TransitionStatus(context.Background(), b.ID, domain.BookingConfirmed, domain.RoleAdmin); err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}

	// a failed create must not publish
	bad := cashRequest(movie.ID, 100)
	bad.PaymentMethod = "score"
	if _, err := svc.CreateBooking(context.Background(), user.ID, bad); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.queues) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(sink.queues))
	}
	if sink.queues[0] != "booking.created" || sink.queues[1] != "booking.status_changed" {
		t.Fatalf("unexpected queues: %v", sink.queues)
	}
}
