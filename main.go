package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"bingo-tracker/bingo"
	"bingo-tracker/handlers"
	"bingo-tracker/middleware"
	"bingo-tracker/models"
	"bingo-tracker/services"
	"bingo-tracker/utils"
	"bingo-tracker/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 2 * 1024 * 1024, // webhook payloads are small
	})

	// CORS so the board site (GitHub Pages) can fetch state
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: *")
		allowedOriginsEnv = "*"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOriginsString,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Api-Key, Authorization",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Event{},
		&models.BoardRecord{},
		&models.DropRecord{},
		&models.DeathRecord{},
		&models.RankSnapshot{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 archival disabled: %v", err)
	}

	adminPassword := os.Getenv("BINGO_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "bingo2025"
		log.Println("⚠️  BINGO_ADMIN_PASSWORD not set — using the default (change this!)")
	}
	dropKey := os.Getenv("DROP_API_KEY")

	dedupePolicy := bingo.ParseDedupePolicy(os.Getenv("DEDUPE_POLICY"))
	dedupeWindow := bingo.DefaultDedupeWindow
	if raw := os.Getenv("DEDUPE_WINDOW_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			dedupeWindow = time.Duration(seconds) * time.Second
		}
	}
	log.Printf("🔁 Dedupe policy: %s (window %s)", dedupePolicy, dedupeWindow)

	eventService := services.NewEventService(db)
	boardService := services.NewBoardService(db, eventService, adminPassword)
	deathService := services.NewDeathService(db, eventService)
	dropService := services.NewDropService(db, eventService, boardService, deathService, dedupePolicy, dedupeWindow)
	rankService := services.NewRankService(db, envOr("GIM_GROUP_NAME", "unsociables"), adminPassword)
	archiveService := services.NewArchiveService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background jobs: hiscores scrape + daily board archival
	var jobs []services.ScheduledJob
	if os.Getenv("GIM_SCRAPE_DISABLED") != "true" {
		scraper := workers.NewGIMScraper(
			rankService.Group,
			envInt("GIM_GROUP_SIZE", workers.DefaultGroupSize),
			envInt("GIM_MAX_PAGES", workers.DefaultMaxPages),
			utils.HTTPClient,
			rankService,
		)
		rankService.Scraper = scraper
		jobs = append(jobs, services.ScheduledJob{
			Name:  "gim-hiscores-scrape",
			Every: envDuration("GIM_SCRAPE_INTERVAL", 6*time.Hour),
			Run:   scraper.Run,
		})
	}
	if utils.R2Enabled() {
		jobs = append(jobs, services.ScheduledJob{
			Name:  "board-archive",
			Every: envDuration("ARCHIVE_INTERVAL", 24*time.Hour),
			Run:   archiveService.Run,
		})
	}
	if len(jobs) > 0 {
		sched, err := services.StartScheduler(ctx, jobs...)
		if err != nil {
			log.Fatal("failed to start scheduler:", err)
		}
		defer func() { _ = sched.Shutdown() }()
	}

	dropAuth := middleware.DropKeyMiddleware(dropKey)
	handlers.SetupBoardRoutes(app, boardService)
	handlers.SetupDropRoutes(app, dropService, dropAuth)
	handlers.SetupDeathRoutes(app, deathService, dropAuth)
	handlers.SetupRankRoutes(app, rankService, dropAuth)
	handlers.SetupEventRoutes(app, eventService)

	port := envOr("PORT", "5000")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("🚀 Bingo API server running on http://localhost:%s", port)
	log.Println("✅ Dink webhooks ingest at /webhook, pre-extracted drops at /drop")
	log.Println("✅ Board at /bingo, scores at /scores, history at /history, deaths at /deaths")

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
