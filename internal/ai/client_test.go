package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"
)

func fptr(v float64) *float64 { return &v }

func testClient(baseURL string) *Client {
	return NewClient(&config.AI{
		BaseURL:        baseURL,
		ApiKey:         "test-key",
		Model:          "test-model",
		RateLimit:      100,
		RateLimitBurst: 10,
	}, zap.NewNop())
}

// chatServer fakes the chat-completions endpoint with a fixed answer.
func chatServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)

		content, err := json.Marshal(answer)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%s}}]}`, content)
	}))
}

func TestAnalyzeReturnsModelText(t *testing.T) {
	srv := chatServer(t, "## Performance summary\nSolid month.")
	defer srv.Close()

	c := testClient(srv.URL)
	trades := []models.Trade{{Symbol: "AAPL", BuyPrice: 100, SellPrice: fptr(110), Quantity: 1, Date: "2024-01-01"}}
	got := c.Analyze(context.Background(), trades, models.TradeStats{TotalTrades: 1})
	assert.Equal(t, "## Performance summary\nSolid month.", got)
}

func TestAnalyzeFailuresYieldSentinel(t *testing.T) {
	t.Run("Server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusInternalServerError)
		}))
		defer srv.Close()

		got := testClient(srv.URL).Analyze(context.Background(), nil, models.TradeStats{})
		assert.Equal(t, AnalysisUnavailable, got)
	})

	t.Run("Unreachable host", func(t *testing.T) {
		got := testClient("http://127.0.0.1:1").Analyze(context.Background(), nil, models.TradeStats{})
		assert.Equal(t, AnalysisUnavailable, got)
	})

	t.Run("Missing api key", func(t *testing.T) {
		c := NewClient(&config.AI{BaseURL: "http://example.invalid", RateLimit: 1, RateLimitBurst: 1}, zap.NewNop())
		got := c.Analyze(context.Background(), nil, models.TradeStats{})
		assert.Equal(t, AnalysisUnavailable, got)
	})

	t.Run("Empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		}))
		defer srv.Close()

		got := testClient(srv.URL).Analyze(context.Background(), nil, models.TradeStats{})
		assert.Equal(t, AnalysisUnavailable, got)
	})
}

func TestAnalysisPromptCapsTradeSample(t *testing.T) {
	var trades []models.Trade
	for i := 0; i < maxTradesInPrompt+25; i++ {
		trades = append(trades, models.Trade{
			Symbol:   fmt.Sprintf("SYM%03d", i),
			BuyPrice: 10,
			Quantity: 1,
			Date:     "2024-01-01",
		})
	}

	prompt := buildAnalysisPrompt(trades, models.TradeStats{})
	assert.Contains(t, prompt, "SYM049")
	assert.NotContains(t, prompt, "SYM050")
	assert.Equal(t, maxTradesInPrompt, strings.Count(prompt, "still held"))
}

func TestLookupPrice(t *testing.T) {
	srv := chatServer(t, "As of today, AAPL trades at $1,234.56 on the NASDAQ.")
	defer srv.Close()

	quote, err := testClient(srv.URL).LookupPrice(context.Background(), "aapl")
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.InDelta(t, 1234.56, quote.Price, 1e-9)
	assert.Contains(t, quote.RawText, "NASDAQ")
}

func TestLookupPriceNoAmountInAnswer(t *testing.T) {
	srv := chatServer(t, "I cannot provide real-time market data.")
	defer srv.Close()

	quote, err := testClient(srv.URL).LookupPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestLookupPriceTransportError(t *testing.T) {
	quote, err := testClient("http://127.0.0.1:1").LookupPrice(context.Background(), "AAPL")
	assert.Error(t, err)
	assert.Nil(t, quote)
}
