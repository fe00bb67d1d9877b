package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"
)

// AnalysisUnavailable is returned to the caller whenever the analysis call
// cannot be completed, instead of an error.
const AnalysisUnavailable = "Could not generate analysis. Please check your AI configuration and try again."

// maxTradesInPrompt caps the trade sample sent to the model, for payload size.
const maxTradesInPrompt = 50

// ClientInterface defines the interface for the AI collaborator.
type ClientInterface interface {
	Analyze(ctx context.Context, trades []models.Trade, stats models.TradeStats) string
	LookupPrice(ctx context.Context, symbol string) (*Quote, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint. Calls are
// one-shot: no retry, no caching, failures degrade to sentinels.
type Client struct {
	client  *resty.Client
	apiKey  string
	model   string
	logger  *zap.Logger
	limiter *rate.Limiter
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a new AI client from config.
func NewClient(cfg *config.AI, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		apiKey:  cfg.ApiKey,
		model:   cfg.Model,
		logger:  logger,
		limiter: limiter,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs a single chat-completion round trip.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("AI api key is not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var result chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model:    c.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion failed with status %s: %s", resp.Status(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// Analyze asks the model for a narrative review of the journal. On any
// failure it returns the fixed AnalysisUnavailable string; the caller never
// sees an error.
func (c *Client) Analyze(ctx context.Context, trades []models.Trade, stats models.TradeStats) string {
	text, err := c.complete(ctx, buildAnalysisPrompt(trades, stats))
	if err != nil {
		c.logger.Error("AI analysis failed", zap.Error(err))
		return AnalysisUnavailable
	}
	return text
}

// buildAnalysisPrompt renders the stats snapshot plus a capped trade sample
// into the four-part analysis request.
func buildAnalysisPrompt(trades []models.Trade, stats models.TradeStats) string {
	if len(trades) > maxTradesInPrompt {
		trades = trades[:maxTradesInPrompt]
	}

	var b strings.Builder
	b.WriteString("You are a trading coach reviewing a personal trade journal.\n\n")
	fmt.Fprintf(&b, "Summary statistics:\n")
	fmt.Fprintf(&b, "- Total trades: %d (open positions: %d)\n", stats.TotalTrades, stats.OpenPositions)
	fmt.Fprintf(&b, "- Total realized profit: %.2f\n", stats.TotalProfit)
	fmt.Fprintf(&b, "- Win rate: %.1f%%\n", stats.WinRate)
	fmt.Fprintf(&b, "- Average buy price: %.2f, average sell price: %.2f\n", stats.AvgBuyPrice, stats.AvgSellPrice)
	fmt.Fprintf(&b, "- Best trade: %.2f, worst trade: %.2f\n\n", stats.BestTrade, stats.WorstTrade)

	b.WriteString("Trades:\n")
	for _, t := range trades {
		if t.Closed() {
			fmt.Fprintf(&b, "- %s %s: buy %.2f sell %.2f qty %d", t.Date, t.Symbol, t.BuyPrice, *t.SellPrice, t.Quantity)
		} else {
			fmt.Fprintf(&b, "- %s %s: buy %.2f qty %d (still held)", t.Date, t.Symbol, t.BuyPrice, t.Quantity)
		}
		if t.Remarks != "" {
			fmt.Fprintf(&b, " (%s)", t.Remarks)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nRespond in markdown with exactly four sections: ")
	b.WriteString("1) performance summary, 2) open-position commentary, ")
	b.WriteString("3) pattern recognition, 4) strategic advice.")
	return b.String()
}
