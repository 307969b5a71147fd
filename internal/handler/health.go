package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/9mit/Youtube-Intelligence/internal/cache"
)

type HealthHandler struct {
	pool        *pgxpool.Pool // nil when archiving is disabled
	cache       *cache.Cache
	modelKeySet bool
	startAt     time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, c *cache.Cache, modelKeySet bool) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		cache:       c,
		modelKeySet: modelKeySet,
		startAt:     time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// Disabled dependencies (no database, no redis) never degrade readiness;
// a missing model credential always does, since no analysis can run.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	checks["database"] = checkDB(ctx, h.pool)
	if dbCheck, ok := checks["database"].(fiber.Map); ok {
		if dbCheck["status"] == "down" {
			overallStatus = "degraded"
		}
	}

	checks["redis"] = checkRedis(ctx, h.cache)
	if redisCheck, ok := checks["redis"].(fiber.Map); ok {
		if redisCheck["status"] == "down" && overallStatus == "healthy" {
			overallStatus = "degraded"
		}
	}

	if h.modelKeySet {
		checks["model"] = fiber.Map{"status": "configured"}
	} else {
		checks["model"] = fiber.Map{"status": "unconfigured"}
		overallStatus = "degraded"
	}

	uptimeSeconds := int(time.Since(h.startAt).Seconds())

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": uptimeSeconds,
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func checkDB(ctx context.Context, pool *pgxpool.Pool) fiber.Map {
	if pool == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

func checkRedis(ctx context.Context, c *cache.Cache) fiber.Map {
	start := time.Now()
	err := c.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err == cache.ErrRedisDisabled {
		return fiber.Map{"status": "disabled"}
	}
	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
