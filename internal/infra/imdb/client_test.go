package imdb

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-quiz/internal/domain"
)

const topMoviesJSON = `{
  "items": [
    {"id": "tt0111161", "rank": "1", "title": "The Shawshank Redemption", "image": "https://m.media-amazon.com/images/M/MV5BMDFk._V1_Ratio0.6716_AL_.jpg", "imDbRating": "9.2"},
    {"id": "tt0068646", "rank": "2", "title": "The Godfather", "image": "https://m.media-amazon.com/images/M/MV5BM2Mw._V1_Ratio0.7015_AL_.jpg", "imDbRating": "9.2"},
    {"id": "tt0468569", "rank": "3", "title": "The Dark Knight", "image": "https://m.media-amazon.com/images/M/MV5BMTMx._V1_Ratio0.6716_AL_.jpg", "imDbRating": ""}
  ],
  "errorMessage": ""
}`

func TestFetchCatalogueSuccess(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(topMoviesJSON))
	}))
	defer server.Close()

	client := NewClient(Options{URL: server.URL + "/API/Top250Movies/", APIKey: "k_test", MaxItems: 2})
	cat, err := client.FetchCatalogue(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if path != "/API/Top250Movies/k_test" {
		t.Fatalf("unexpected request path %s", path)
	}
	if len(cat.Items) != 2 {
		t.Fatalf("expected catalogue bounded to 2 items, got %d", len(cat.Items))
	}
	if cat.Items[1].Title != "The Godfather" || cat.Items[1].Rating != "9.2" {
		t.Fatalf("unexpected movie %+v", cat.Items[1])
	}
}

func TestFetchCatalogueFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		kind    domain.DataErrorKind
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }, domain.DataErrorBadStatus},
		{"empty body", func(w http.ResponseWriter, r *http.Request) {}, domain.DataErrorNoData},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{items:")) }, domain.DataErrorDecode},
		{"api error", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"items": [], "errorMessage": "Invalid API Key"}`))
		}, domain.DataErrorNoData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := NewClient(Options{URL: server.URL}).FetchCatalogue(context.Background())
			var de *domain.DataError
			if !errors.As(err, &de) || de.Kind != tc.kind {
				t.Fatalf("expected %s error, got %v", tc.kind, err)
			}
		})
	}
}

func TestFetchCatalogueTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(Options{URL: url}).FetchCatalogue(context.Background())
	var de *domain.DataError
	if !errors.As(err, &de) || de.Kind != domain.DataErrorTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestLoadImage(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer server.Close()

	client := NewClient(Options{URL: server.URL, ResizeImages: true})
	data, err := client.LoadImage(context.Background(), server.URL+"/posters/MV5BMDFk._V1_Ratio0.6716_AL_.jpg")
	if err != nil {
		t.Fatalf("load image: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("unexpected payload %v", data)
	}
	if requested != "/posters/MV5BMDFk._V0_UX600_.jpg" {
		t.Fatalf("expected resized poster URL, got %s", requested)
	}

	if _, err := client.LoadImage(context.Background(), server.URL+"/missing.jpg"); err == nil {
		t.Fatalf("expected error for missing image")
	}
	if _, err := client.LoadImage(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty reference")
	}
}

func TestLoadImageRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte{0xFF}, maxBodyBytes+1))
	}))
	defer server.Close()

	client := NewClient(Options{URL: server.URL})
	_, err := client.LoadImage(context.Background(), server.URL+"/huge.jpg")
	var de *domain.DataError
	if !errors.As(err, &de) || de.Kind != domain.DataErrorDecode {
		t.Fatalf("expected decode error for oversized body, got %v", err)
	}
}

func TestResizedImageURL(t *testing.T) {
	if got := ResizedImageURL("https://x/a._V1_.jpg"); got != "https://x/a._V0_UX600_.jpg" {
		t.Fatalf("unexpected %s", got)
	}
	if got := ResizedImageURL("https://x/a.jpg"); got != "https://x/a.jpg" {
		t.Fatalf("url without suffix should be unchanged, got %s", got)
	}
}
