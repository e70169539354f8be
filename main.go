package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ksabeheer/internal/handlers"
	"ksabeheer/internal/middleware"
	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
	"ksabeheer/internal/services"
	"ksabeheer/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "ksabeheer.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	redisURL := viper.GetString("REDIS_URL")

	// --- Database ---
	db, err := openDatabase(databaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Drink{},
		&models.Order{},
		&models.Streak{},
		&models.Event{},
		&models.Quote{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The broker carries session/order lifecycle events. Without one, events
	// are simply not published; everything else keeps working.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, continuing without events: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Settings store (Redis, with in-memory fallback) ---
	var settingsRepo repositories.SettingsRepository
	if redisURL != "" {
		redisRepo, err := repositories.NewRedisSettingsRepository(redisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, settings will not persist: %v", err)
			settingsRepo = repositories.NewMockSettingsRepository()
		} else {
			defer redisRepo.Close()
			settingsRepo = redisRepo
		}
	} else {
		settingsRepo = repositories.NewMockSettingsRepository()
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	drinkRepo := repositories.NewGORMDrinkRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	streakRepo := repositories.NewGORMStreakRepository(db)
	eventRepo := repositories.NewGORMEventRepository(db)
	quoteRepo := repositories.NewGORMQuoteRepository(db)
	notifRepo := repositories.NewGORMNotificationRepository(db)

	// Seed the fallback catalog so a fresh install has drinks to streep.
	seedDrinks(drinkRepo)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	drinkService := services.NewDrinkService(drinkRepo)
	notifService := services.NewNotificationService(notifRepo, userRepo)
	sessionService := services.NewSessionService(orderRepo, notifService, mqClient)
	orderService := services.NewOrderService(orderRepo, userRepo, sessionService, notifService, mqClient)
	streakService := services.NewStreakService(streakRepo, drinkRepo, userRepo)
	tabService := services.NewTabService(streakRepo, userRepo, drinkRepo)
	eventService := services.NewEventService(eventRepo)
	quoteService := services.NewQuoteService(quoteRepo)
	billingService := services.NewBillingService(settingsRepo)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	drinkHandler := handlers.NewDrinkHandler(drinkService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	orderHandler := handlers.NewOrderHandler(orderService)
	streakHandler := handlers.NewStreakHandler(streakService, tabService)
	eventHandler := handlers.NewEventHandler(eventService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	notifHandler := handlers.NewNotificationHandler(notifService)
	billingHandler := handlers.NewBillingHandler(billingService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())         // Request logger
	app.Use(middleware.Metrics()) // Prometheus request metrics

	// --- Health and metrics endpoints (public) ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"session": sessionService.Current().Status,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// Protected routes (require JWT authentication)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	// Admin routes additionally require the sfeerbeheer role
	admin := protected.Group("", middleware.SfeerbeheerOnly())

	drinkHandler.RegisterRoutes(protected, admin)
	sessionHandler.RegisterRoutes(protected, admin)
	orderHandler.RegisterRoutes(protected)
	streakHandler.RegisterRoutes(protected, admin)
	eventHandler.RegisterRoutes(protected, admin)
	quoteHandler.RegisterRoutes(protected, admin)
	notifHandler.RegisterRoutes(protected)
	billingHandler.RegisterRoutes(protected, admin)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for club events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received club event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	sessionService.Shutdown()
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase picks the GORM driver from the DSN: postgres URLs or key/value
// DSNs get the postgres driver, anything else is treated as a sqlite path.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// seedDrinks populates an empty catalog with the fallback drink list.
func seedDrinks(repo repositories.DrinkRepository) {
	existing, err := repo.GetAll()
	if err != nil {
		log.Printf("Error checking drink catalog: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}
	for _, drink := range models.FallbackCatalog() {
		d := drink
		if err := repo.Create(&d); err != nil {
			log.Printf("Error seeding drink %s: %v", d.Name, err)
		} else {
			log.Printf("Seeded drink: %s (ID: %s)", d.Name, d.ID)
		}
	}
}
