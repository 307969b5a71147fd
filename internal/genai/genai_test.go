package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, hasTools := req["tools"]; !hasTools {
			t.Error("request has no tools, want google_search")
		}

		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "part one "}, {"text": "part two"}]},
				"groundingMetadata": {
					"groundingChunks": [
						{"web": {"title": "Wikipedia", "uri": "https://en.wikipedia.org/wiki/A"}},
						{"web": {}},
						{"notWeb": {"x": 1}}
					]
				}
			}]
		}`))
	}))
	defer srv.Close()

	c := New("test-key", "", srv.URL)
	res, err := c.Generate(context.Background(), "analyze this", true)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.Text != "part one part two" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(res.Sources))
	}
	if res.Sources[0].Title != "Wikipedia" {
		t.Errorf("Sources[0].Title = %q", res.Sources[0].Title)
	}
	// Empty web section gets placeholders, not empty strings.
	if res.Sources[1].Title != "Source" || res.Sources[1].URI != "#" {
		t.Errorf("Sources[1] = %+v, want placeholders", res.Sources[1])
	}
}

func TestGenerateWithoutSearchOmitsTools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, hasTools := req["tools"]; hasTools {
			t.Error("request carries tools, want none")
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer srv.Close()

	res, err := New("k", "", srv.URL).Generate(context.Background(), "compare", false)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if res.Text != "ok" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Sources != nil {
		t.Errorf("Sources = %v, want nil", res.Sources)
	}
}

func TestGenerateEmptyResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{}`},
		{"candidate without content", `{"candidates": [{}]}`},
		{"content without parts", `{"candidates": [{"content": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := New("k", "", srv.URL).Generate(context.Background(), "p", true)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if res.Text != "" {
				t.Errorf("Text = %q, want empty", res.Text)
			}
			if res.Sources != nil {
				t.Errorf("Sources = %v, want nil", res.Sources)
			}
		})
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	_, err := New("k", "", srv.URL).Generate(context.Background(), "p", true)
	if err == nil {
		t.Fatal("Generate() error = nil, want model invocation error")
	}
	if apperr.KindOf(err) != apperr.KindModelInvocation {
		t.Errorf("kind = %v, want KindModelInvocation", apperr.KindOf(err))
	}
}

func TestGenerateUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New("k", "", srv.URL).Generate(context.Background(), "p", false)
	if err == nil {
		t.Fatal("Generate() error = nil, want model invocation error")
	}
	if apperr.KindOf(err) != apperr.KindModelInvocation {
		t.Errorf("kind = %v, want KindModelInvocation", apperr.KindOf(err))
	}
}
