// AngelaMos | 2026
// client_test.go

package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptopay-app/api/internal/config"
)

func testConfig(baseURL string) config.MarketConfig {
	return config.MarketConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		FallbackPrice:  68854.93,
		FallbackChange: 3.6,
	}
}

func tickerServer(t *testing.T, price, change string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))

			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/v3/ticker/price":
				_, _ = w.Write([]byte(
					`{"symbol":"BTCUSDT","price":"` + price + `"}`,
				))
			case "/api/v3/ticker/24hr":
				_, _ = w.Write([]byte(
					`{"symbol":"BTCUSDT","priceChangePercent":"` + change + `"}`,
				))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		},
	))
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_BitcoinQuote(t *testing.T) {
	srv := tickerServer(t, "97123.45", "-1.25")
	client := NewClient(testConfig(srv.URL))

	quote := client.BitcoinQuote(context.Background())

	assert.InDelta(t, 97123.45, quote.Price, 0.001)
	assert.InDelta(t, -1.25, quote.Change, 0.001)
}

func TestClient_FallbackBeforeFirstFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	))
	t.Cleanup(srv.Close)

	client := NewClient(testConfig(srv.URL))

	quote := client.BitcoinQuote(context.Background())

	assert.InDelta(t, 68854.93, quote.Price, 0.001)
	assert.InDelta(t, 3.6, quote.Change, 0.001)
}

func TestClient_ServesStaleQuoteAfterUpstreamFailure(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if !healthy {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/api/v3/ticker/price":
				_, _ = w.Write([]byte(`{"price":"50000.00"}`))
			case "/api/v3/ticker/24hr":
				_, _ = w.Write([]byte(`{"priceChangePercent":"2.0"}`))
			}
		},
	))
	t.Cleanup(srv.Close)

	client := NewClient(testConfig(srv.URL))

	first := client.BitcoinQuote(context.Background())
	require.InDelta(t, 50000.00, first.Price, 0.001)

	healthy = false

	second := client.BitcoinQuote(context.Background())
	assert.InDelta(t, 50000.00, second.Price, 0.001,
		"last known quote outlives the upstream")
	assert.InDelta(t, 2.0, second.Change, 0.001)
}

func TestClient_MalformedResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
		},
	))
	t.Cleanup(srv.Close)

	client := NewClient(testConfig(srv.URL))

	quote := client.BitcoinQuote(context.Background())
	assert.InDelta(t, 68854.93, quote.Price, 0.001)
}
