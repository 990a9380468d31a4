package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finedu/backend/internal/config"
	"finedu/backend/internal/db"
	"finedu/backend/internal/handler"
	transport "finedu/backend/internal/http"
	"finedu/backend/internal/logger"
	"finedu/backend/internal/market"
	"finedu/backend/internal/network"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/scheduler"
	"finedu/backend/internal/service"
	"finedu/backend/internal/service/ai"
	"finedu/backend/internal/snowflake"
)

// @title FinEdu Backend API
// @version 1.0
// @description Backend for the finance education platform.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	userRepo := repository.NewUserRepository(dbConn)
	sessionRepo := repository.NewSessionRepository(dbConn)
	progressRepo := repository.NewProgressRepository(dbConn)
	activityRepo := repository.NewActivityRepository(dbConn)
	portfolioRepo := repository.NewPortfolioRepository(dbConn)
	noteRepo := repository.NewNoteRepository(dbConn)
	submissionRepo := repository.NewSubmissionRepository(dbConn)
	newsRepo := repository.NewNewsRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)

	settingsService := service.NewSettingsService(settingsRepo, cfg.MCPBaseURL, cfg.MCPAPIKey)
	clientFactory := network.NewClientFactory(settingsService)

	authService, err := service.NewAuthService(userRepo, sessionRepo, settingsRepo, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}
	progressService := service.NewProgressService(progressRepo, activityRepo, userRepo)
	marketClient := market.NewClient(settingsService, clientFactory, market.NewRateLimiter(market.DefaultRateLimit))
	portfolioService := service.NewPortfolioService(portfolioRepo, marketClient)
	caseService := service.NewCaseService(submissionRepo)
	noteService := service.NewNoteService(noteRepo)
	newsService := service.NewNewsService(newsRepo, settingsRepo, clientFactory, cfg.NewsFeeds)
	advisorService := service.NewAdvisorService(settingsService, progressService, caseService, ai.NewRateLimiter(ai.DefaultRateLimit))

	if cfg.Debug {
		if err := authService.EnsureDemoUser(context.Background()); err != nil {
			logger.Warn("demo user seeding failed",
				"module", "main", "action", "seed", "resource", "user", "result", "failed", "error", err)
		}
	}

	router := transport.NewRouter(transport.RouterConfig{
		AuthService: authService,
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserHandler(authService),
		Progress:    handler.NewProgressHandler(progressService),
		Portfolio:   handler.NewPortfolioHandler(portfolioService),
		Cases:       handler.NewCaseHandler(caseService),
		Notes:       handler.NewNoteHandler(noteService),
		Market:      handler.NewMarketHandler(marketClient),
		News:        handler.NewNewsHandler(newsService),
		Advisor:     handler.NewAdvisorHandler(advisorService),
		Settings:    handler.NewSettingsHandler(settingsService),
		CORSEnabled: cfg.CORSEnabled,
		StaticDir:   cfg.StaticDir,
	})

	// Start background scheduler (30 minutes interval)
	sched := scheduler.New(newsService, authService, 30*time.Minute)
	sched.Start()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		sched.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := router.Start(cfg.Addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}
