// Package client fetches war state from the war-status API and returns
// records with their planet names already resolved.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/warfeed/internal/metrics"
	"github.com/ajitpratap0/warfeed/pkg/enrich"
	"github.com/ajitpratap0/warfeed/pkg/models"
)

const (
	// BaseURL is the production war-status API.
	BaseURL = "https://api.live.prod.thehelldiversgame.com/api"

	// DefaultHTTPTimeout bounds a single round trip on the default transport.
	DefaultHTTPTimeout = 30 * time.Second
)

// Doer performs a single HTTP round trip. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a read-only war-status API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	doer    Doer
	names   enrich.PlanetNamer
	logger  *slog.Logger
}

// New creates a Client for the production API.
func New(names enrich.PlanetNamer, logger *slog.Logger) *Client {
	return NewWithURL(BaseURL, &http.Client{Timeout: DefaultHTTPTimeout}, names, logger)
}

// NewWithURL creates a Client against a custom base URL and transport.
// A nil doer uses an http.Client with DefaultHTTPTimeout, a nil logger uses
// slog.Default, and nil names leaves every derived name empty.
func NewWithURL(baseURL string, doer Doer, names enrich.PlanetNamer, logger *slog.Logger) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		names:   names,
		logger:  logger,
	}
}

// Status fetches the current snapshot of a war, localized to lang.
func (c *Client) Status(ctx context.Context, warID int64, lang models.Language) (*models.Status, error) {
	url := fmt.Sprintf("%s/WarSeason/%d/Status", c.baseURL, warID)

	var status models.Status
	if err := c.get(ctx, url, lang.Tag(), &status); err != nil {
		return nil, err
	}

	if misses := enrich.Status(&status, c.names); misses > 0 {
		metrics.Add(metrics.EnrichMisses, misses)
		c.logger.Debug("status: unresolved planet names", "war_id", warID, "misses", misses)
	}
	return &status, nil
}

// WarInfo fetches the planet layout of a war.
func (c *Client) WarInfo(ctx context.Context, warID int64) (*models.WarInfo, error) {
	url := fmt.Sprintf("%s/WarSeason/%d/WarInfo", c.baseURL, warID)

	var info models.WarInfo
	if err := c.get(ctx, url, "", &info); err != nil {
		return nil, err
	}

	if misses := enrich.WarInfo(&info, c.names); misses > 0 {
		metrics.Add(metrics.EnrichMisses, misses)
		c.logger.Debug("war info: unresolved planet names", "war_id", warID, "misses", misses)
	}
	return &info, nil
}

// WarTime fetches the war clock.
func (c *Client) WarTime(ctx context.Context, warID int64) (int64, error) {
	url := fmt.Sprintf("%s/WarSeason/%d/WarTime", c.baseURL, warID)

	var wt models.WarTime
	if err := c.get(ctx, url, "", &wt); err != nil {
		return 0, err
	}
	return wt.Time, nil
}

// NewsFeed fetches the news feed of a war, localized to lang.
func (c *Client) NewsFeed(ctx context.Context, warID int64, lang models.Language) ([]models.NewsItem, error) {
	url := fmt.Sprintf("%s/NewsFeed/%d", c.baseURL, warID)

	var items []models.NewsItem
	if err := c.get(ctx, url, lang.Tag(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items, nil
}

// get performs one GET and decodes a 2xx body into out. An empty language
// omits the Accept-Language header.
func (c *Client) get(ctx context.Context, url, language string, out any) error {
	requestID := uuid.NewString()
	metrics.Inc(metrics.FetchTotal)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		metrics.Inc(metrics.FetchErrors)
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if language != "" {
		req.Header.Set("Accept-Language", language)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		metrics.Inc(metrics.FetchErrors)
		c.logger.Debug("fetch failed", "request_id", requestID, "url", url, "error", err)
		return &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("fetched",
		"request_id", requestID,
		"url", url,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.Inc(metrics.FetchErrors)
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusBadRequest {
			return &InvalidWarIDError{URL: url}
		}
		return &APIError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Inc(metrics.FetchErrors)
		return &TransportError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		metrics.Inc(metrics.FetchErrors)
		return &DecodeError{URL: url, Err: errNullBody}
	}
	if err := json.Unmarshal(body, out); err != nil {
		metrics.Inc(metrics.FetchErrors)
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}
