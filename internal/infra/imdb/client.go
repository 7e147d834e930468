package imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"movie-quiz/internal/domain"
)

const (
	DefaultURL      = "https://tv-api.com/en/API/Top250Movies"
	defaultTimeout  = 20 * time.Second
	defaultMaxItems = 250
	maxBodyBytes    = 8 << 20
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	URL          string
	APIKey       string
	MaxItems     int
	Timeout      time.Duration
	ResizeImages bool
	HTTPClient   *http.Client
}

// Client fetches the Top-250 catalogue and poster images over HTTP.
type Client struct {
	http         *http.Client
	catalogueURL string
	maxItems     int
	resizeImages bool
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		base = DefaultURL
	}
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		base += "/" + key
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = defaultMaxItems
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		http:         client,
		catalogueURL: base,
		maxItems:     opts.MaxItems,
		resizeImages: opts.ResizeImages,
	}
}

type topMoviesResponse struct {
	Items        []domain.Movie `json:"items"`
	ErrorMessage string         `json:"errorMessage"`
}

// FetchCatalogue implements app.DataSource. Every failure is a *domain.DataError.
func (c *Client) FetchCatalogue(ctx context.Context) (domain.Catalogue, error) {
	body, err := c.get(ctx, c.catalogueURL)
	if err != nil {
		return domain.Catalogue{}, err
	}

	var resp topMoviesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Catalogue{}, domain.NewDataError(domain.DataErrorDecode, err)
	}
	if len(resp.Items) == 0 {
		msg := strings.TrimSpace(resp.ErrorMessage)
		if msg == "" {
			msg = "catalogue has no items"
		}
		return domain.Catalogue{}, &domain.DataError{Kind: domain.DataErrorNoData, Message: msg}
	}
	if len(resp.Items) > c.maxItems {
		resp.Items = resp.Items[:c.maxItems]
	}
	return domain.Catalogue{Items: resp.Items}, nil
}

// LoadImage implements app.ImageLoader.
func (c *Client) LoadImage(ctx context.Context, ref string) ([]byte, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, errors.New("empty image reference")
	}
	if c.resizeImages {
		ref = ResizedImageURL(ref)
	}
	return c.get(ctx, ref)
}

// ResizedImageURL points a poster URL at its 600px-wide rendition.
func ResizedImageURL(ref string) string {
	i := strings.Index(ref, "._")
	if i < 0 {
		return ref
	}
	return ref[:i] + "._V0_UX600_.jpg"
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewDataError(domain.DataErrorTransport, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewDataError(domain.DataErrorTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.DataError{Kind: domain.DataErrorBadStatus, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, domain.NewDataError(domain.DataErrorTransport, fmt.Errorf("read body: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, &domain.DataError{Kind: domain.DataErrorDecode, Message: fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes)}
	}
	if len(body) == 0 {
		return nil, &domain.DataError{Kind: domain.DataErrorNoData, Message: "empty response body"}
	}
	return body, nil
}
