package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/genai"
	"github.com/9mit/Youtube-Intelligence/internal/oembed"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"old v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"no id segment", "https://www.youtube.com/watch?v=short", ""},
		{"channel page", "https://www.youtube.com/@mrbeast", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVideoID(tt.url); got != tt.want {
				t.Errorf("extractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

const truthJSON = `{
	"videoTitle": "A Title The Model Made Up",
	"creatorName": "Wrong Creator",
	"language": "English",
	"detectedLanguageCode": "en",
	"truthScore": 50,
	"summaryVerdict": "Mixed accuracy",
	"isFakingFacts": false,
	"toneAnalysis": "Educational",
	"claims": [
		{"statement": "The moon is made of rock", "status": "Verified", "evidence": "NASA", "sourceUrl": "https://nasa.gov"}
	]
}`

func newTruthService(t *testing.T, gen Generator, oembedBody string, oembedStatus int) *TruthService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if oembedStatus != 0 {
			w.WriteHeader(oembedStatus)
			return
		}
		w.Write([]byte(oembedBody))
	}))
	t.Cleanup(srv.Close)
	return NewTruthService(gen, oembed.New(srv.URL), nil)
}

func TestAnalyzeTruth(t *testing.T) {
	gen := &fakeGenerator{
		results: []genai.Result{{Text: "```json\n" + truthJSON + "\n```"}},
	}
	svc := newTruthService(t, gen, `{"title": "Real Title", "author_name": "Real Creator"}`, 0)

	report, err := svc.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	// Verified metadata overrides whatever the model produced.
	if report.VideoTitle != "Real Title" {
		t.Errorf("VideoTitle = %q, want Real Title", report.VideoTitle)
	}
	if report.CreatorName != "Real Creator" {
		t.Errorf("CreatorName = %q, want Real Creator", report.CreatorName)
	}

	if !gen.searches[0] {
		t.Error("truth analysis ran without search grounding")
	}

	// Score 50, n=100, 95%: margin = 1.96 * sqrt(0.25/100) * 100 = 9.8.
	ci := report.ScoreConfidence
	if ci == nil {
		t.Fatal("ScoreConfidence not attached")
	}
	if ci.MarginOfError != 9.8 {
		t.Errorf("MarginOfError = %v, want 9.8", ci.MarginOfError)
	}
	if ci.LowerBound != 40.2 || ci.UpperBound != 59.8 {
		t.Errorf("bounds = [%v, %v], want [40.2, 59.8]", ci.LowerBound, ci.UpperBound)
	}

	if len(report.Claims) != 1 || report.Claims[0].Status != "Verified" {
		t.Errorf("Claims = %+v", report.Claims)
	}
	if report.References == nil {
		t.Error("References = nil, want empty slice")
	}
}

func TestAnalyzeTruthNoScoreNoConfidence(t *testing.T) {
	gen := &fakeGenerator{
		results: []genai.Result{{Text: `{"videoTitle": "x", "creatorName": "y", "isFakingFacts": false}`}},
	}
	svc := newTruthService(t, gen, `{"title": "T", "author_name": "A"}`, 0)

	report, err := svc.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if report.ScoreConfidence != nil {
		t.Errorf("ScoreConfidence = %+v, want nil when the model omits truthScore", report.ScoreConfidence)
	}
}

func TestAnalyzeTruthInvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a youtube url", "https://vimeo.com/123456"},
		{"plain text", "just some words"},
		{"youtube url without video id", "https://www.youtube.com/@mrbeast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			svc := newTruthService(t, gen, `{}`, 0)

			_, err := svc.Analyze(context.Background(), tt.input)
			if apperr.KindOf(err) != apperr.KindInvalidInput {
				t.Errorf("kind = %v, want KindInvalidInput", apperr.KindOf(err))
			}
			if len(gen.prompts) != 0 {
				t.Errorf("model calls = %d, want 0", len(gen.prompts))
			}
		})
	}
}

func TestAnalyzeTruthMetadataUnavailable(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTruthService(t, gen, "", http.StatusNotFound)

	_, err := svc.Analyze(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if apperr.KindOf(err) != apperr.KindUpstreamFetch {
		t.Errorf("kind = %v, want KindUpstreamFetch", apperr.KindOf(err))
	}
	if len(gen.prompts) != 0 {
		t.Errorf("model calls = %d, want 0", len(gen.prompts))
	}
}
