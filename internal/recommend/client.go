// Package recommend fetches "top products" from the upstream
// recommendation service. The data is decorative: every failure mode
// degrades to an empty list and never reaches the caller as an error.
package recommend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultTimeout bounds the upstream call when the config does not set one.
const DefaultTimeout = 30 * time.Second

// Product is one recommended product. Name and Price are the only
// required upstream fields.
type Product struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image,omitempty"`
	URL      string  `json:"url,omitempty"`
}

// rawProduct mirrors the upstream wire shape; Price is a pointer so a
// missing field is distinguishable from zero.
type rawProduct struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	ImageURL string   `json:"image"`
	URL      string   `json:"url"`
}

// Config holds the upstream endpoint and credential pair.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client calls the recommendation service.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client with a pooled HTTP transport. TLS
// verification stays enabled.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.With("component", "recommend"),
	}
}

// FetchTopProducts returns at most limit products from the upstream
// /products resource, in upstream order. Any failure (network, non-2xx,
// malformed or empty body, first element missing name/price) returns
// nil. The whole batch is discarded when the first element is invalid;
// there is no per-element filtering.
func (c *Client) FetchTopProducts(ctx context.Context, limit int) []Product {
	if c.cfg.BaseURL == "" {
		c.logger.Error("recommendation base URL is not configured")
		return nil
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/products"
	c.logger.Debug("fetching top products", "url", url, "limit", limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("building recommendation request failed", "url", url, "error", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("X-API-Secret", c.cfg.APISecret)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("recommendation request failed", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("recommendation service returned error status",
			"url", url, "status", resp.StatusCode)
		return nil
	}

	var raw []rawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("decoding recommendation response failed", "url", url, "error", err)
		return nil
	}
	if len(raw) == 0 {
		c.logger.Error("recommendation response is empty", "url", url)
		return nil
	}
	if raw[0].Name == "" || raw[0].Price == nil {
		c.logger.Error("recommended product missing required fields", "url", url)
		return nil
	}

	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}

	products := make([]Product, 0, len(raw))
	for _, r := range raw {
		p := Product{Name: r.Name, ImageURL: r.ImageURL, URL: r.URL}
		if r.Price != nil {
			p.Price = *r.Price
		}
		products = append(products, p)
	}

	c.logger.Debug("fetched top products", "count", len(products))
	return products
}
