// Package oembed fetches video title and author from YouTube's public
// oEmbed endpoint.
package oembed

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://www.youtube.com/oembed"
	fetchTimeout   = 10 * time.Second

	// Placeholders for fields the endpoint did not return.
	unknownTitle   = "Unknown Title"
	unknownCreator = "Unknown Creator"
)

// Metadata is the verified title and author of a video.
type Metadata struct {
	Title  string
	Author string
}

// Client queries an oEmbed endpoint. The zero base URL targets YouTube.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client against the given endpoint, or YouTube's public
// one when baseURL is empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch looks up metadata for a video URL. It makes a single bounded
// call and reports ok=false on any failure: unreachable endpoint,
// error status, or an unreadable body. It never returns an error; a
// missing video and a network fault look the same to callers.
func (c *Client) Fetch(ctx context.Context, videoURL string) (Metadata, bool) {
	endpoint := c.baseURL + "?url=" + url.QueryEscape(videoURL) + "&format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("Failed to fetch video metadata: %v", err)
		return Metadata{}, false
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Printf("Failed to fetch video metadata: %v", err)
		return Metadata{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Metadata{}, false
	}

	var body struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Printf("Failed to fetch video metadata: %v", err)
		return Metadata{}, false
	}

	meta := Metadata{Title: body.Title, Author: body.AuthorName}
	if meta.Title == "" {
		meta.Title = unknownTitle
	}
	if meta.Author == "" {
		meta.Author = unknownCreator
	}
	return meta, true
}
