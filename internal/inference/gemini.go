// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/genre"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
)

var _ Inferrer = (*Client)(nil)

// BreakerName labels the Gemini breaker in metrics.
const BreakerName = "gemini-api"

const userPromptFormat = `Analyze this mood/situation and suggest 2-3 appropriate movie genres: "%s"`

// systemPrompt lists the vocabulary the mapping table understands.
var systemPrompt = `You are a movie recommendation expert. Analyze the user's mood or situation and suggest appropriate movie genres.
Return ONLY a JSON array of genre names in lowercase. Available genres: ` + strings.Join(genre.Labels(), ", ") + `.

Example:
Input: "I'm feeling sad after a breakup"
Output: ["romance", "drama"]`

// Options configures a Client.
type Options struct {
	APIKey     string
	Model      string        // default gemini-pro
	BaseURL    string        // default https://generativelanguage.googleapis.com
	Timeout    time.Duration // default 15s
	HTTPClient *http.Client

	// Breaker overrides the default circuit breaker settings.
	Breaker *breaker.Config
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	cb         *breaker.Breaker
}

// NewClient builds a Client. An empty API key is allowed; every call then
// degrades immediately without touching the network.
func NewClient(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = "gemini-pro"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	cbCfg := breaker.DefaultConfig(BreakerName)
	if opts.Breaker != nil {
		cbCfg = *opts.Breaker
		cbCfg.Name = BreakerName
	}

	return &Client{
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		timeout:    opts.Timeout,
		httpClient: httpClient,
		cb:         breaker.New(cbCfg),
	}
}

// Breaker exposes the underlying breaker for health reporting.
func (c *Client) Breaker() *breaker.Breaker {
	return c.cb
}

// Infer asks Gemini for genres matching mood. It never returns an error;
// failures come back as Degraded(["drama"], cause).
func (c *Client) Infer(ctx context.Context, mood string) Result {
	genres, err := c.infer(ctx, mood)
	if err != nil {
		r := reason(err)
		metrics.InferenceFallbacks.WithLabelValues(r).Inc()
		logging.CtxWarn(ctx).Err(err).Str("reason", r).Msg("Genre inference degraded to fallback")
		return Degraded(FallbackGenres(), err)
	}
	return Ok(genres)
}

func (c *Client) infer(ctx context.Context, mood string) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.generate(ctx, fmt.Sprintf(userPromptFormat, mood))
	})
	if err != nil {
		return nil, err
	}
	text, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type", ErrTransport)
	}
	return extractGenres(text)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the text of the
// first candidate.
func (c *Client) generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstreamCall("gemini", "generate", time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %w", ErrTransport, err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
