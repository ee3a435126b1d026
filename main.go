package main

import (
	"log"
	"net/smtp"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"faculty-jobs-api/config"
	"faculty-jobs-api/internal/app"
	"faculty-jobs-api/internal/database"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/server"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/storage/postgres"
	"faculty-jobs-api/internal/sweep"

	"github.com/go-playground/validator/v10"
)

// @title           Faculty Jobs API
// @version         1.0
// @description     Academic job marketplace backend: institution onboarding, job moderation, and the application lifecycle.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	store := postgres.NewStore(dbPool)

	// Notifications go out in the background; a send failure never fails the
	// request that triggered it.
	var notifier notify.Notifier
	if cfg.SMTP.Addr != "" {
		var auth smtp.Auth
		if cfg.SMTP.Username != "" {
			host := cfg.SMTP.Addr
			if i := strings.LastIndexByte(host, ':'); i >= 0 {
				host = host[:i]
			}
			auth = smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, host)
		}
		notifier = notify.Async{Inner: notify.NewSMTPNotifier(cfg.SMTP.Addr, cfg.SMTP.From, auth), Timeout: 10 * time.Second}
	} else {
		log.Println("SMTP relay not configured, notifications will be logged only")
		notifier = notify.LogNotifier{}
	}

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   validate,

		UserService:        services.NewUserService(store, notifier),
		CompanyService:     services.NewCompanyService(store, notifier),
		JobService:         services.NewJobService(store, notifier),
		ApplicationService: services.NewApplicationService(store, notifier),
		AdminService:       services.NewAdminService(store, redisClient),
	}

	sweeper := sweep.NewSweeper(application.JobService)
	if err := sweeper.Start(cfg.Sweep.Schedule); err != nil {
		log.Fatalf("Failed to start expiry sweep: %v", err)
	}

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	sweeper.Stop()
	log.Println("Application gracefully stopped.")
}
