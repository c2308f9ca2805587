package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Quote is the hub's daily quote widget payload.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// fallbackQuote is served whenever the upstream API cannot be reached.
var fallbackQuote = Quote{Content: "Knowledge is power.", Author: "Francis Bacon"}

const defaultQuoteURL = "https://api.quotable.io/random?maxLength=100"

// QuoteClient fetches a short random quote for the hub dashboard. Upstream
// failures never surface to callers; the fallback quote is returned instead.
type QuoteClient struct {
	httpClient *http.Client
	url        string
	cache      *memoCache[Quote]
	logger     *slog.Logger
}

// NewQuoteClient builds a quote client. A zero cacheTTL uses the cache
// default; a nil httpClient gets a short timeout suitable for page rendering.
func NewQuoteClient(httpClient *http.Client, url string, cacheTTL time.Duration, logger *slog.Logger) *QuoteClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if url == "" {
		url = defaultQuoteURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &QuoteClient{
		httpClient: httpClient,
		url:        url,
		cache:      newMemoCache[Quote](cacheTTL, nil),
		logger:     logger,
	}
}

// Fetch returns the current quote, serving from cache while fresh.
func (c *QuoteClient) Fetch(ctx context.Context) Quote {
	if c == nil {
		return fallbackQuote
	}
	if quote, ok := c.cache.Get("quote"); ok {
		return quote
	}

	quote, err := c.fetchUpstream(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "quote fetch failed, serving fallback", "error", err)
		return fallbackQuote
	}
	c.cache.Store("quote", quote)
	return quote
}

func (c *QuoteClient) fetchUpstream(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Quote{}, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote upstream returned %d", res.StatusCode)
	}

	var quote Quote
	if err := json.NewDecoder(res.Body).Decode(&quote); err != nil {
		return Quote{}, err
	}
	if quote.Content == "" {
		return Quote{}, fmt.Errorf("quote upstream returned empty content")
	}
	return quote, nil
}
