package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/9mit/Youtube-Intelligence/internal/cache"
	"github.com/9mit/Youtube-Intelligence/internal/config"
	"github.com/9mit/Youtube-Intelligence/internal/db"
	"github.com/9mit/Youtube-Intelligence/internal/genai"
	"github.com/9mit/Youtube-Intelligence/internal/handler"
	"github.com/9mit/Youtube-Intelligence/internal/middleware"
	"github.com/9mit/Youtube-Intelligence/internal/oembed"
	"github.com/9mit/Youtube-Intelligence/internal/repository"
	"github.com/9mit/Youtube-Intelligence/internal/router"
	"github.com/9mit/Youtube-Intelligence/internal/service"
)

func main() {
	// A missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "tubetale")

	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	reportCache := cache.New(cfg.RedisURL, cfg.CacheTTL, cfg.CacheMaxEntries)
	defer reportCache.Close()

	// The archive is optional: without DATABASE_URL the services run
	// cache-only and the archive endpoints report 404.
	var pool *pgxpool.Pool
	var archive *repository.ReportRepo
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()

		archive = repository.NewReportRepo(pool)
		if err := archive.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to ensure archive schema: %v", err)
		}

		retention := time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour
		pruner := service.NewArchiveWorker(archive, retention, time.Hour)
		go pruner.Start(ctx)
		defer pruner.Stop()
	}

	gen := genai.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	channels := service.NewChannelService(gen, reportCache, archive)
	battles := service.NewBattleService(channels, gen, archive)
	truth := service.NewTruthService(gen, oembed.New(""), archive)

	handler.InitMetrics(pool, reportCache)

	h := &router.Handlers{
		Analyze: handler.NewAnalyzeHandler(channels, battles, truth),
		Health:  handler.NewHealthHandler(pool, reportCache, cfg.GeminiAPIKey != ""),
		Reports: handler.NewReportsHandler(archive, reportCache),
	}

	app := fiber.New(fiber.Config{
		AppName:      "TubeTale API",
		ServerHeader: "TubeTale",
	})
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("TubeTale backend starting on :%s (model=%s, env=%s)", cfg.Port, gen.Model(), cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
