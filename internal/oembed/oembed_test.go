package oembed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	videoURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != videoURL {
			t.Errorf("url param = %q, want %q", got, videoURL)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format param = %q, want json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Never Gonna Give You Up", "author_name": "Rick Astley"}`))
	}))
	defer srv.Close()

	meta, ok := New(srv.URL).Fetch(context.Background(), videoURL)
	if !ok {
		t.Fatal("Fetch() ok = false")
	}
	if meta.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "Rick Astley" {
		t.Errorf("Author = %q", meta.Author)
	}
}

func TestFetchMissingFieldsGetPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	meta, ok := New(srv.URL).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !ok {
		t.Fatal("Fetch() ok = false")
	}
	if meta.Title != "Unknown Title" {
		t.Errorf("Title = %q, want Unknown Title", meta.Title)
	}
	if meta.Author != "Unknown Creator" {
		t.Errorf("Author = %q, want Unknown Creator", meta.Author)
	}
}

func TestFetchNotFound(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not Found", http.StatusNotFound)
		}))
		defer srv.Close()

		if _, ok := New(srv.URL).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); ok {
			t.Error("Fetch() ok = true on 404")
		}
	})

	t.Run("bad body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		if _, ok := New(srv.URL).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); ok {
			t.Error("Fetch() ok = true on unparseable body")
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		if _, ok := New(srv.URL).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); ok {
			t.Error("Fetch() ok = true on connection failure")
		}
	})
}
