package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/middleware"
	"github.com/9mit/Youtube-Intelligence/internal/service"
)

// AnalyzeHandler serves the three analysis endpoints.
type AnalyzeHandler struct {
	channels *service.ChannelService
	battles  *service.BattleService
	truth    *service.TruthService
}

func NewAnalyzeHandler(channels *service.ChannelService, battles *service.BattleService, truth *service.TruthService) *AnalyzeHandler {
	return &AnalyzeHandler{channels: channels, battles: battles, truth: truth}
}

// Channel handles POST /api/analyze-channel
func (h *AnalyzeHandler) Channel(c fiber.Ctx) error {
	var req struct {
		ChannelName string `json:"channelName"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	name, errMsg := middleware.ValidateChannelName(req.ChannelName)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	report, err := h.channels.Analyze(c.Context(), name)
	if err != nil {
		return serviceError(c, "channel", err)
	}

	Metrics.AnalysesTotal.WithLabelValues("channel", "ok").Inc()
	return c.JSON(report)
}

// Battle handles POST /api/run-battle
func (h *AnalyzeHandler) Battle(c fiber.Ctx) error {
	var req struct {
		Channels []json.RawMessage `json:"channels"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	names, errMsg := middleware.ValidateChannels(req.Channels)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	result, err := h.battles.Run(c.Context(), names)
	if err != nil {
		return serviceError(c, "battle", err)
	}

	Metrics.AnalysesTotal.WithLabelValues("battle", "ok").Inc()
	return c.JSON(result)
}

// Truth handles POST /api/analyze-truth
func (h *AnalyzeHandler) Truth(c fiber.Ctx) error {
	var req struct {
		VideoInput string `json:"videoInput"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input, errMsg := middleware.ValidateVideoInput(req.VideoInput)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	report, err := h.truth.Analyze(c.Context(), input)
	if err != nil {
		return serviceError(c, "truth", err)
	}

	Metrics.AnalysesTotal.WithLabelValues("truth", "ok").Inc()
	return c.JSON(report)
}

// serviceError maps an error's kind to a response: invalid input is the
// caller's fault (400), everything else an upstream or internal failure
// (500). The tagged message is returned as-is; untagged errors get a
// generic message so internals never leak.
func serviceError(c fiber.Ctx, mode string, err error) error {
	kind := apperr.KindOf(err)
	Metrics.AnalysesTotal.WithLabelValues(mode, kind.String()).Inc()

	status := fiber.StatusInternalServerError
	if kind == apperr.KindInvalidInput {
		status = fiber.StatusBadRequest
	}

	msg := apperr.Message(err)
	if msg == "" {
		msg = "Internal server error"
	}

	middleware.Logger.Error().
		Str("mode", mode).
		Str("kind", kind.String()).
		Err(err).
		Msg("analysis failed")

	return middleware.ErrorResponse(c, status, msg)
}
