package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"movietheater/internal/config"
	"movietheater/internal/database"
	"movietheater/internal/middleware"
	"movietheater/internal/modules/auth"
	"movietheater/internal/modules/booking"
	"movietheater/internal/modules/movie"
	"movietheater/internal/modules/promotion"
	"movietheater/internal/modules/user"
	jwtsvc "movietheater/internal/pkg/jwt"
	"movietheater/internal/pkg/response"
	"movietheater/internal/queue"
	"movietheater/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var events booking.EventSink
	if cfg.RabbitMQURL != "" {
		events = queue.NewPublisher(cfg.RabbitMQURL)
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	movieService := movie.NewService(movieRepo)
	movieHandler := movie.NewHandler(movieService)

	promotionService := promotion.NewService(promotionRepo)
	promotionHandler := promotion.NewHandler(promotionService)

	bookingService := booking.NewService(db, events)
	bookingHandler := booking.NewHandler(bookingService)

	// nil redis client turns the cache into a passthrough
	cache := middleware.ResponseCache(config.NewRedisClient(cfg.RedisAddr), cfg.CacheTTL)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterRoutes(api)
		movieHandler.RegisterPublicRoutes(api, cache)
		promotionHandler.RegisterPublicRoutes(api, cache)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			movieHandler.RegisterStaffRoutes(protected.Group("/", middleware.StaffOnly()))

			admin := protected.Group("/", middleware.AdminOnly())
			{
				userHandler.RegisterRoutes(admin)
				movieHandler.RegisterAdminRoutes(admin)
				promotionHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
