// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
)

var _ Catalog = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL      string // e.g. https://api.themoviedb.org/3
	APIKey       string // sent as the api_key query parameter
	ReadToken    string // optional v4 read token, sent as a bearer token
	ImageBaseURL string // e.g. https://image.tmdb.org/t/p
	PosterSize   string
	BackdropSize string
	Timeout      time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
	Burst             int

	HTTPClient *http.Client
}

// Client calls the TMDB v3 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	readToken  string
	images     imageConfig
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient builds a Client. Empty sizes default to w342 posters and
// w1280 backdrops; a zero timeout defaults to 10s.
func NewClient(opts Options) *Client {
	if opts.PosterSize == "" {
		opts.PosterSize = "w342"
	}
	if opts.BackdropSize == "" {
		opts.BackdropSize = "w1280"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:    opts.APIKey,
		readToken: opts.ReadToken,
		images: imageConfig{
			baseURL:      strings.TrimSuffix(opts.ImageBaseURL, "/"),
			posterSize:   opts.PosterSize,
			backdropSize: opts.BackdropSize,
		},
		timeout:    opts.Timeout,
		limiter:    rate.NewLimiter(limit, burst),
		httpClient: httpClient,
	}
}

// DiscoverByGenres calls /discover/movie sorted by popularity with a 6.0
// rating floor, then truncates to limit.
func (c *Client) DiscoverByGenres(ctx context.Context, ids []int, page, limit int) ([]models.Movie, error) {
	params := url.Values{}
	if len(ids) > 0 {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(parts, ","))
	}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	params.Set("vote_average.gte", "6")
	params.Set("sort_by", "popularity.desc")

	var resp pageResponse
	if err := c.get(ctx, "discover", "/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	return truncate(c.normalizeAll(resp.Results), limit), nil
}

// Search calls /search/movie. Results are not truncated.
func (c *Client) Search(ctx context.Context, query string, page int) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))

	var resp pageResponse
	if err := c.get(ctx, "search", "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return c.normalizeAll(resp.Results), nil
}

// Details calls /movie/{id}.
func (c *Client) Details(ctx context.Context, id int64) (*models.Movie, error) {
	var raw tmdbMovie
	path := "/movie/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "details", path, nil, &raw); err != nil {
		return nil, err
	}
	movie := c.normalize(raw)
	return &movie, nil
}

// Popular calls /movie/popular and truncates to limit.
func (c *Client) Popular(ctx context.Context, page, limit int) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))

	var resp pageResponse
	if err := c.get(ctx, "popular", "/movie/popular", params, &resp); err != nil {
		return nil, err
	}
	return truncate(c.normalizeAll(resp.Results), limit), nil
}

// Trending calls /trending/movie/week and truncates to limit.
func (c *Client) Trending(ctx context.Context, limit int) ([]models.Movie, error) {
	var resp pageResponse
	if err := c.get(ctx, "trending", "/trending/movie/week", nil, &resp); err != nil {
		return nil, err
	}
	return truncate(c.normalizeAll(resp.Results), limit), nil
}

// get performs one throttled GET and decodes a 2xx body into out.
func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out interface{}) (err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstreamCall("tmdb", operation, time.Since(start), err) }()

	// A client hanging up does not abort an in-flight TMDB call; the
	// per-call timeout still bounds it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb %s: %w: throttle: %w", path, ErrUnavailable, err)
	}

	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w: %w", path, ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.readToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.readToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w: %w", path, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Message:    statusMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb %s: %w: %w", path, ErrDecode, err)
	}
	return nil
}

// statusMessage extracts TMDB's status_message, falling back to the raw body.
func statusMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var e struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(data, &e) == nil && e.StatusMessage != "" {
		return e.StatusMessage
	}
	return strings.TrimSpace(string(data))
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
