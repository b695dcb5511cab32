package semantic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// Result is an opaque downstream response: the body is forwarded to the
// caller without interpretation.
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client proxies requests to the external semantic search service through a
// circuit breaker. Response bodies are treated as opaque.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a semantic search client for the given base URL.
func NewClient(http *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Search forwards a ranked search request with the given query parameters.
func (c *Client) Search(ctx context.Context, params url.Values) (*Result, error) {
	return c.get(ctx, "/search", params)
}

// SeasonalRecommendations forwards a seasonal recommendation request.
func (c *Client) SeasonalRecommendations(ctx context.Context, params url.Values) (*Result, error) {
	return c.get(ctx, "/seasonal-recommendations", params)
}

// SpellCorrect forwards a spell correction request body.
func (c *Client) SpellCorrect(ctx context.Context, contentType string, body io.Reader) (*Result, error) {
	return c.post(ctx, "/spell-correct", contentType, body)
}

// ImageToCaption forwards an image captioning request body.
func (c *Client) ImageToCaption(ctx context.Context, contentType string, body io.Reader) (*Result, error) {
	return c.post(ctx, "/image-to-caption", contentType, body)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*Result, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	resp, err := c.http.Get(ctx, target)
	if err != nil {
		return nil, c.translate(ctx, path, err)
	}

	return c.read(resp)
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*Result, error) {
	resp, err := c.http.Post(ctx, c.baseURL+path, contentType, body)
	if err != nil {
		return nil, c.translate(ctx, path, err)
	}

	return c.read(resp)
}

// read drains the response and packages it for opaque forwarding. 4xx bodies
// pass through untouched so downstream validation errors reach the caller.
func (c *Client) read(resp *http.Response) (*Result, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10 MB limit
	if err != nil {
		return nil, fmt.Errorf("read semantic search response: %w", err)
	}

	return &Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// translate maps transport and breaker failures to a 503 for the caller.
func (c *Client) translate(ctx context.Context, path string, err error) error {
	if errors.Is(err, httpclient.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "semantic search circuit open",
			slog.String("path", path),
		)
		return apperrors.Unavailable("semantic search is temporarily unavailable")
	}

	c.logger.ErrorContext(ctx, "semantic search request failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	return apperrors.Unavailable("semantic search is unavailable")
}
