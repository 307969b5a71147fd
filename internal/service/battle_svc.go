package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/extract"
	"github.com/9mit/Youtube-Intelligence/internal/model"
	"github.com/9mit/Youtube-Intelligence/internal/repository"
	"github.com/9mit/Youtube-Intelligence/internal/stats"
)

// Battle size bounds.
const (
	MinBattleChannels = 2
	MaxBattleChannels = 5
)

// BattleService compares channels: every contender is analyzed through
// the channel service (sharing its cache), then one synthesis call
// scores them against each other.
type BattleService struct {
	channels   *ChannelService
	gen        Generator
	archive    *repository.ReportRepo
	thresholds stats.Thresholds
}

func NewBattleService(channels *ChannelService, gen Generator, archive *repository.ReportRepo) *BattleService {
	return &BattleService{
		channels:   channels,
		gen:        gen,
		archive:    archive,
		thresholds: stats.DefaultThresholds(),
	}
}

// Run analyzes 2-5 channels and synthesizes a verdict. The synthesis
// call runs without search grounding; it only ranks the reports already
// gathered. Any upstream failure aborts the whole battle.
func (s *BattleService) Run(ctx context.Context, names []string) (*model.BattleResult, error) {
	if len(names) < MinBattleChannels || len(names) > MaxBattleChannels {
		return nil, apperr.New(apperr.KindInvalidInput, "Please provide 2-5 channels")
	}

	reports := make([]*model.ChannelReport, 0, len(names))
	for _, name := range names {
		report, err := s.channels.Analyze(ctx, name)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	reportNames := make([]string, len(reports))
	for i, r := range reports {
		reportNames[i] = r.ChannelName
	}

	channelData, err := json.Marshal(reports)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindModelInvocation, "failed to encode channel data for synthesis", err)
	}

	res, err := s.gen.Generate(ctx, battlePrompt(strings.Join(reportNames, ", "), channelData), false)
	if err != nil {
		return nil, err
	}

	raw, err := extract.Object(res.Text)
	if err != nil {
		return nil, err
	}

	var synthesis struct {
		Scores  []model.BattleScore  `json:"scores"`
		Verdict *model.BattleVerdict `json:"verdict"`
	}
	if err := json.Unmarshal(raw, &synthesis); err != nil {
		return nil, apperr.Wrap(apperr.KindSchema, "model output does not match the battle schema", err)
	}

	overall := make([]float64, len(synthesis.Scores))
	for i, sc := range synthesis.Scores {
		overall[i] = sc.Overall.Float64()
	}
	battleStats := stats.BattleStatistics(overall, s.thresholds)

	result := &model.BattleResult{
		Channels:   reports,
		Scores:     synthesis.Scores,
		Verdict:    synthesis.Verdict,
		Statistics: &battleStats,
	}

	if data, err := json.Marshal(result); err == nil {
		archiveReport(ctx, s.archive, model.ModeBattle, strings.Join(names, " vs "), data)
	}

	return result, nil
}
