package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/api"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/events"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/payments"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/s3"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/tracing"
	_ "github.com/mahfuzHasan2003/Study-Sphere-backend/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("studysphere")

	shutdownTracer, err := tracing.InitTracerProvider("studysphere")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	filePresigner, err := s3.NewFilePresigner()
	if err != nil {
		log.Fatalf("Failed to configure S3 presigner: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	materialRepo := repository.NewPostgresMaterialRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)
	noteRepo := repository.NewPostgresNoteRepository(db)

	userService := service.NewUserService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, eventPublisher)
	materialService := service.NewMaterialService(materialRepo, sessionRepo)
	bookingService := service.NewBookingService(bookingRepo, sessionRepo, eventPublisher)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, sessionRepo)
	noteService := service.NewNoteService(noteRepo)
	paymentService := service.NewPaymentService(payments.NewStripeClient(), userRepo, sessionRepo)

	userHandler := api.NewUserHandler(userService)
	sessionHandler := api.NewSessionHandler(sessionService)
	materialHandler := api.NewMaterialHandler(materialService, filePresigner)
	bookingHandler := api.NewBookingHandler(bookingService)
	reviewHandler := api.NewReviewHandler(reviewService)
	noteHandler := api.NewNoteHandler(noteService)
	paymentHandler := api.NewPaymentHandler(paymentService)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "studysphere"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.RegisterRoutes(app, userService, api.Handlers{
		User:     userHandler,
		Session:  sessionHandler,
		Material: materialHandler,
		Booking:  bookingHandler,
		Review:   reviewHandler,
		Note:     noteHandler,
		Payment:  paymentHandler,
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Listening studysphere on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
