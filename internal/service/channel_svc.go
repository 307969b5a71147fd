package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/cache"
	"github.com/9mit/Youtube-Intelligence/internal/extract"
	"github.com/9mit/Youtube-Intelligence/internal/genai"
	"github.com/9mit/Youtube-Intelligence/internal/model"
	"github.com/9mit/Youtube-Intelligence/internal/repository"
	"github.com/9mit/Youtube-Intelligence/internal/stats"
)

// Generator is the model-client surface the analysis services depend on.
type Generator interface {
	Generate(ctx context.Context, prompt string, withSearch bool) (genai.Result, error)
}

// ChannelService produces channel intelligence reports: one grounded
// model call per uncached channel, post-processed with the statistics
// layer and cached under the lowercased channel name.
type ChannelService struct {
	gen        Generator
	cache      *cache.Cache
	archive    *repository.ReportRepo // nil when archiving is disabled
	thresholds stats.Thresholds
}

func NewChannelService(gen Generator, c *cache.Cache, archive *repository.ReportRepo) *ChannelService {
	return &ChannelService{
		gen:        gen,
		cache:      c,
		archive:    archive,
		thresholds: stats.DefaultThresholds(),
	}
}

func channelCacheKey(name string) string {
	return "channel:" + strings.ToLower(name)
}

// Analyze returns the report for a channel, from cache when available.
// On a miss it prompts the model with search grounding, salvages the
// JSON reply, validates it, attaches the computed statistics, and
// caches the result. Failure paths never populate the cache.
func (s *ChannelService) Analyze(ctx context.Context, name string) (*model.ChannelReport, error) {
	key := channelCacheKey(name)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var report model.ChannelReport
			if err := json.Unmarshal(data, &report); err == nil {
				log.Printf("channel: returning cached result for %s", name)
				return &report, nil
			}
		}
	}

	res, err := s.gen.Generate(ctx, channelPrompt(name), true)
	if err != nil {
		return nil, err
	}

	raw, err := extract.Object(res.Text)
	if err != nil {
		return nil, err
	}
	if err := requireFields(raw, "channelName", "stats", "growthTimeline"); err != nil {
		return nil, err
	}

	var report model.ChannelReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, apperr.Wrap(apperr.KindSchema, "model output does not match the report schema", err)
	}

	growth := stats.GrowthStatistics(report.GrowthTimeline, s.thresholds)
	report.GrowthStatistics = &growth
	report.TrendPrediction = stats.TrendPrediction(report.GrowthTimeline, s.thresholds)

	if report.TopicAnalysis != nil && len(report.TopicAnalysis.TopicDistribution) > 0 {
		report.TopicAnalysis.TopicDistribution = stats.NormalizeTopics(report.TopicAnalysis.TopicDistribution)
	}

	report.Sources = dedupSources(res.Sources)

	if data, err := json.Marshal(&report); err == nil {
		if s.cache != nil {
			s.cache.Set(ctx, key, data)
		}
		archiveReport(ctx, s.archive, model.ModeChannel, name, data)
	}

	return &report, nil
}

// requireFields checks that the salvaged object carries every required
// top-level field before the typed decode.
func requireFields(raw json.RawMessage, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return apperr.Wrap(apperr.KindSchema, "model output does not match the report schema", err)
	}
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return apperr.New(apperr.KindSchema, "Missing required field: "+f)
		}
	}
	return nil
}
