package handler

import (
	"encoding/csv"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/9mit/Youtube-Intelligence/internal/cache"
	"github.com/9mit/Youtube-Intelligence/internal/middleware"
	"github.com/9mit/Youtube-Intelligence/internal/repository"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// ReportsHandler serves the operational read side: service stats and the
// analysis archive. repo is nil when no database is configured; the
// archive endpoints then report 404.
type ReportsHandler struct {
	repo    *repository.ReportRepo
	cache   *cache.Cache
	startAt time.Time
}

func NewReportsHandler(repo *repository.ReportRepo, c *cache.Cache) *ReportsHandler {
	return &ReportsHandler{repo: repo, cache: c, startAt: time.Now()}
}

// GetStats handles GET /api/stats
func (h *ReportsHandler) GetStats(c fiber.Ctx) error {
	stats := h.cache.Stats()

	resp := fiber.Map{
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"cache": fiber.Map{
			"hits":    stats.Hits,
			"misses":  stats.Misses,
			"entries": stats.Entries,
		},
	}

	if h.repo != nil {
		counts, err := h.repo.CountsByMode(c.Context())
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch statistics")
		}
		resp["archive"] = counts
	}

	return c.JSON(resp)
}

// Recent handles GET /api/reports/recent?limit=N
func (h *ReportsHandler) Recent(c fiber.Ctx) error {
	if h.repo == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Archive is not enabled")
	}

	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxRecentLimit)
	}

	entries, err := h.repo.Recent(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	return c.JSON(fiber.Map{"reports": entries})
}

// Export handles GET /api/reports/export
// Streams the archive metadata as CSV. Report bodies stay out of the
// export; they can be large and are available via the recent endpoint.
func (h *ReportsHandler) Export(c fiber.Ctx) error {
	if h.repo == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Archive is not enabled")
	}

	rows, err := h.repo.ExportRows(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export reports")
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=analysis_archive.csv")

	w := csv.NewWriter(c.Response().BodyWriter())
	if err := w.Write([]string{"id", "mode", "subject", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Mode,
			row.Subject,
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
