// Package genai is a minimal client for the Gemini generateContent REST
// API, with optional Google Search grounding.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
	"github.com/9mit/Youtube-Intelligence/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is used when GEMINI_MODEL is not set.
	DefaultModel = "gemini-2.5-flash"
)

// Result is one generation outcome: the raw model text plus any web
// sources the grounding layer cited.
type Result struct {
	Text    string
	Sources []model.Source
}

// Client calls the Gemini generateContent endpoint. No client-side
// timeout is set; calls run until completion or context cancellation.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// New returns a Client for the given model. Empty model and baseURL fall
// back to DefaultModel and the public endpoint.
func New(apiKey, modelName, baseURL string) *Client {
	if modelName == "" {
		modelName = DefaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Request/response wire types for generateContent.

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           *content           `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webSource `json:"web"`
}

type webSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Generate sends a single prompt and returns the model's text together
// with any grounding sources. withSearch attaches the google_search tool
// so the model can cite live web results.
func (c *Client) Generate(ctx context.Context, prompt string, withSearch bool) (Result, error) {
	reqBody := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}
	if withSearch {
		reqBody.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindModelInvocation, "failed to build generation request", err)
	}

	url := c.baseURL + "/v1beta/models/" + c.model + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindModelInvocation, "failed to build generation request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindModelInvocation, "model request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindModelInvocation, "failed to read model response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, apperr.New(apperr.KindModelInvocation,
			"model request failed with status "+resp.Status+": "+apiErrorMessage(body))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, apperr.Wrap(apperr.KindModelInvocation, "failed to decode model response", err)
	}

	cand := decoded.primary()
	return Result{
		Text:    cand.joinedText(),
		Sources: cand.webSources(),
	}, nil
}

// primary returns the first candidate, or a zero candidate when the
// response carried none. Every downstream accessor tolerates the zero
// value.
func (r *generateResponse) primary() candidate {
	if len(r.Candidates) == 0 {
		return candidate{}
	}
	return r.Candidates[0]
}

// joinedText concatenates the candidate's text parts. A candidate with
// no content or no parts yields "".
func (c candidate) joinedText() string {
	if c.Content == nil {
		return ""
	}
	var buf bytes.Buffer
	for _, p := range c.Content.Parts {
		buf.WriteString(p.Text)
	}
	return buf.String()
}

// webSources collects the web citations from the candidate's grounding
// metadata. Chunks without a web section are skipped; missing titles and
// URIs get placeholders so the report never renders empty links.
func (c candidate) webSources() []model.Source {
	if c.GroundingMetadata == nil {
		return nil
	}
	var sources []model.Source
	for _, chunk := range c.GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		src := model.Source{Title: chunk.Web.Title, URI: chunk.Web.URI}
		if src.Title == "" {
			src.Title = "Source"
		}
		if src.URI == "" {
			src.URI = "#"
		}
		sources = append(sources, src)
	}
	return sources
}

// apiErrorMessage pulls the error message out of a Gemini error body,
// falling back to the raw body when it is not the standard shape.
func apiErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
