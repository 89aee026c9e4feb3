package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"movietheater/internal/database"
	"movietheater/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()
	rand.Seed(time.Now().UnixNano())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "theater.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM promotions")
	db.Exec("DELETE FROM movies")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Username:     "admin",
		FullName:     "Theater Administrator",
		Email:        "admin@movietheater.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin / admin123")

	employeeHash, _ := bcrypt.GenerateFromPassword([]byte("employee123"), bcrypt.DefaultCost)
	employee := domain.User{
		Username:     "cashier1",
		FullName:     "Front Desk Cashier",
		Email:        "cashier@movietheater.kz",
		PasswordHash: string(employeeHash),
		Role:         domain.RoleEmployee,
		IsActive:     true,
	}
	db.Create(&employee)

	members := []domain.User{}
	memberNames := []string{"asel", "bekzat", "dina"}
	for i, name := range memberNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		member := domain.User{
			Username:     name,
			FullName:     fmt.Sprintf("Member %d", i+1),
			Email:        fmt.Sprintf("%s@mail.kz", name),
			PasswordHash: string(hash),
			Role:         domain.RoleMember,
			Score:        int64(rand.Intn(20)) * 10,
			IsActive:     true,
		}
		db.Create(&member)
		members = append(members, member)
	}

	// ================== MOVIES ==================
	log.Println("Creating movies...")
	titles := []string{"The Last Reel", "Midnight Express 2", "Steppe Wind", "Quantum Heist", "Paper Planes"}
	genres := []string{"drama", "action", "drama", "sci-fi", "comedy"}
	movies := make([]domain.Movie, 0, len(titles))
	for i, title := range titles {
		movie := domain.Movie{
			Title:       title,
			Description: fmt.Sprintf("Feature film number %d of the season", i+1),
			Genre:       genres[i],
			Duration:    90 + rand.Intn(60),
			Director:    fmt.Sprintf("Director %d", i+1),
			ReleaseDate: time.Now().AddDate(0, 0, -rand.Intn(60)),
			Cast:        []string{fmt.Sprintf("Actor %d", i+1), fmt.Sprintf("Actor %d", i+2)},
			Price:       1500 + int64(rand.Intn(5))*500,
			Showtimes: []domain.Showtime{
				{Date: time.Now().AddDate(0, 0, 1), Time: "14:00", AvailableSeats: 80},
				{Date: time.Now().AddDate(0, 0, 1), Time: "19:30", AvailableSeats: 80},
				{Date: time.Now().AddDate(0, 0, 2), Time: "19:30", AvailableSeats: 100},
			},
			IsActive: true,
		}
		db.Create(&movie)
		movies = append(movies, movie)
	}

	// ================== PROMOTIONS ==================
	log.Println("Creating promotions...")
	promotions := []domain.Promotion{
		{
			Title:              "Student Tuesday",
			Description:        "Discount for weekday afternoon shows",
			DiscountPercentage: 20,
			StartDate:          time.Now().AddDate(0, 0, -7),
			EndDate:            time.Now().AddDate(0, 1, 0),
			IsActive:           true,
		},
		{
			Title:              "Opening Week",
			Description:        "Season opening special",
			DiscountPercentage: 10,
			StartDate:          time.Now().AddDate(0, 0, -3),
			EndDate:            time.Now().AddDate(0, 0, 4),
			IsActive:           true,
		},
		{
			Title:              "Expired Summer Deal",
			Description:        "Kept for booking history",
			DiscountPercentage: 30,
			StartDate:          time.Now().AddDate(0, -3, 0),
			EndDate:            time.Now().AddDate(0, -2, 0),
			IsActive:           true,
		},
	}
	for i := range promotions {
		db.Create(&promotions[i])
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")
	statuses := []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingConfirmed}
	for i := 0; i < 8; i++ {
		movie := movies[rand.Intn(len(movies))]
		member := members[rand.Intn(len(members))]
		seats := []string{fmt.Sprintf("A%d", i+1), fmt.Sprintf("A%d", i+2)}
		total := movie.Price * int64(len(seats))

		booking := domain.Booking{
			UserID:        member.ID,
			MovieID:       movie.ID,
			ShowDate:      time.Now().AddDate(0, 0, 1+rand.Intn(2)),
			ShowTime:      "19:30",
			Seats:         seats,
			TotalAmount:   total,
			PaymentMethod: domain.PaymentCash,
			FinalAmount:   total,
			ScoreEarned:   domain.ScoreEarnedFor(total),
			Status:        statuses[rand.Intn(len(statuses))],
		}
		db.Create(&booking)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin: admin / admin123")
	log.Println("Employee: cashier1 / employee123")
	log.Println("Members: asel, bekzat, dina / member123")
}
