package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/applicant-intake-go/internal/config"
	appHTTP "github.com/cmlabs-hris/applicant-intake-go/internal/handler/http"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/database"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/savelock"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/storage"
	"github.com/cmlabs-hris/applicant-intake-go/internal/repository/postgresql"
	applicantService "github.com/cmlabs-hris/applicant-intake-go/internal/service/applicant"
	"github.com/cmlabs-hris/applicant-intake-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	applicantRepo := postgresql.NewApplicantRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}
	fileService := file.NewFileService(fileStorage)

	// Redis shares the save guard across instances; without it the guard is per process.
	var guard savelock.Guard = savelock.NewMemory()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := savelock.NewClient(ctx, cfg.Redis.URL)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		guard = savelock.NewRedis(redisClient, cfg.Intake.SaveLockTTL)
	}

	intakeMetrics := metrics.New()
	reconciler := applicantService.NewReconciler(
		applicantService.WithAddressExtractor(applicantService.CachedExtractor(
			applicantService.NewAddressCache(cfg.Intake.AddressCacheTTL),
			intakeMetrics,
		)),
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	applicantSvc := applicantService.NewApplicantService(
		reconciler,
		applicantRepo,
		documentRepo,
		fileService,
		guard,
		intakeMetrics,
	)

	applicantHandler := appHTTP.NewApplicantHandler(applicantSvc)

	router := appHTTP.NewRouter(JWTService, applicantHandler, appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server error", "error", err)
	}
}
