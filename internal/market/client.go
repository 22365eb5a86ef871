// AngelaMos | 2026
// client.go

// Package market proxies the Binance spot ticker for the dashboard's live
// Bitcoin price. This is display-only data; it never touches the ledger.
package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/cryptopay-app/api/internal/config"
)

type Quote struct {
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	fallback   Quote

	mu   sync.RWMutex
	last *Quote
}

func NewClient(cfg config.MarketConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		fallback: Quote{
			Price:  cfg.FallbackPrice,
			Change: cfg.FallbackChange,
		},
	}
}

// BitcoinQuote never fails: on upstream errors it serves the last known
// quote, or the configured fallback before any fetch has succeeded.
func (c *Client) BitcoinQuote(ctx context.Context) Quote {
	quote, err := c.fetch(ctx)
	if err != nil {
		slog.Warn("bitcoin price fetch failed, serving stale quote",
			"error", err,
		)
		return c.lastKnown()
	}

	c.mu.Lock()
	c.last = &quote
	c.mu.Unlock()

	return quote
}

func (c *Client) fetch(ctx context.Context) (Quote, error) {
	priceBody, err := c.get(ctx, "/api/v3/ticker/price?symbol=BTCUSDT")
	if err != nil {
		return Quote{}, err
	}

	price := gjson.GetBytes(priceBody, "price")
	if !price.Exists() {
		return Quote{}, fmt.Errorf("price missing from ticker response")
	}

	changeBody, err := c.get(ctx, "/api/v3/ticker/24hr?symbol=BTCUSDT")
	if err != nil {
		return Quote{}, err
	}

	change := gjson.GetBytes(changeBody, "priceChangePercent")
	if !change.Exists() {
		return Quote{}, fmt.Errorf("change missing from ticker response")
	}

	return Quote{Price: price.Float(), Change: change.Float()}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+path,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // close on cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return body, nil
}

func (c *Client) lastKnown() Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.last != nil {
		return *c.last
	}
	return c.fallback
}
