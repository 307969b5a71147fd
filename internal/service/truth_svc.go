package service

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/extract"
	"github.com/9mit/Youtube-Intelligence/internal/model"
	"github.com/9mit/Youtube-Intelligence/internal/oembed"
	"github.com/9mit/Youtube-Intelligence/internal/repository"
	"github.com/9mit/Youtube-Intelligence/internal/stats"
)

// The known YouTube URL shapes an 11-character video ID can hide in.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// extractVideoID pulls the 11-character video ID out of a YouTube URL,
// or "" when no known shape matches.
func extractVideoID(url string) string {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// TruthService fact-checks a single video. The video's real title and
// creator come from oEmbed and always override whatever the model says
// about them.
type TruthService struct {
	gen        Generator
	meta       *oembed.Client
	archive    *repository.ReportRepo
	thresholds stats.Thresholds
}

func NewTruthService(gen Generator, meta *oembed.Client, archive *repository.ReportRepo) *TruthService {
	return &TruthService{
		gen:        gen,
		meta:       meta,
		archive:    archive,
		thresholds: stats.DefaultThresholds(),
	}
}

// Analyze fact-checks the video behind a YouTube URL.
func (s *TruthService) Analyze(ctx context.Context, videoInput string) (*model.TruthReport, error) {
	lower := strings.ToLower(videoInput)
	if !strings.Contains(lower, "youtube.com/") && !strings.Contains(lower, "youtu.be/") {
		return nil, apperr.New(apperr.KindInvalidInput,
			"Please provide a valid YouTube URL (youtube.com or youtu.be link)")
	}

	videoID := extractVideoID(videoInput)
	if videoID == "" {
		return nil, apperr.New(apperr.KindInvalidInput,
			"Could not extract video ID from URL. Please provide a valid YouTube link.")
	}

	meta, ok := s.meta.Fetch(ctx, videoInput)
	if !ok {
		return nil, apperr.New(apperr.KindUpstreamFetch,
			"Could not fetch video information. The video may be private, deleted, or the URL is invalid.")
	}
	log.Printf("truth: video found: %s by %s", meta.Title, meta.Author)

	res, err := s.gen.Generate(ctx, truthPrompt(videoInput, videoID, meta.Title, meta.Author), true)
	if err != nil {
		return nil, err
	}

	raw, err := extract.Object(res.Text)
	if err != nil {
		return nil, err
	}

	var report model.TruthReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, apperr.Wrap(apperr.KindSchema, "model output does not match the truth schema", err)
	}

	// The verified metadata wins no matter what the model returned.
	report.VideoTitle = meta.Title
	report.CreatorName = meta.Author

	if report.Claims == nil {
		report.Claims = []model.Claim{}
	}

	if report.TruthScore != nil && report.TruthScore.Valid() {
		ci := stats.ConfidenceInterval(report.TruthScore.Float64(), stats.DefaultSampleSize, stats.DefaultConfidence)
		report.ScoreConfidence = &ci
	}

	report.References = dedupSources(res.Sources)

	if data, err := json.Marshal(&report); err == nil {
		archiveReport(ctx, s.archive, model.ModeTruth, videoID, data)
	}

	return &report, nil
}
