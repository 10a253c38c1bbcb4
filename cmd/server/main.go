package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendly/internal/config"
	"attendly/internal/database"
	"attendly/internal/handlers"
	"attendly/internal/repository"
	"attendly/internal/security"
	"attendly/internal/service"
	"attendly/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Println("Warning: JWT_SECRET is using the default value; set it in production")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	// Initialize services
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, tokens, emailService, cfg.ResetTokenTTL)
	userService := service.NewUserService(userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo)

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(userService, cfg.UploadDir, cfg.UploadMaxSize)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	userHandler := handlers.NewUserHandler(userService)

	// Setup routes
	mux := handlers.NewRouter(middleware, authHandler, profileHandler, attendanceHandler, userHandler, cfg.StaticPath, cfg.UploadDir)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
