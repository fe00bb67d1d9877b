package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Quote is a best-effort price extracted from a free-text model answer.
type Quote struct {
	Price   float64 `json:"price"`
	RawText string  `json:"raw_text"`
}

// dollarAmount matches the first dollar-amount-shaped substring in the
// answer, thousands separators allowed. Deliberately permissive: if an
// unrelated figure precedes the real price in the text, that figure wins.
// The unreliability is part of the contract, not a parsing bug.
var dollarAmount = regexp.MustCompile(`\$?\d{1,3}(?:,\d{3})*(?:\.\d+)?`)

// LookupPrice asks the model for the current price of a symbol and extracts
// the first dollar amount from the free-text answer. It returns nil when the
// call succeeds but no amount can be found.
func (c *Client) LookupPrice(ctx context.Context, symbol string) (*Quote, error) {
	prompt := fmt.Sprintf(
		"What is the current stock price of %s? Answer with the latest price in USD.",
		strings.ToUpper(symbol),
	)
	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.logger.Warn("Price lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, fmt.Errorf("price lookup for %s failed: %w", symbol, err)
	}
	return ExtractQuote(text), nil
}

// ExtractQuote pulls the first dollar-amount-shaped substring out of raw
// answer text. Returns nil when nothing matches.
func ExtractQuote(text string) *Quote {
	match := dollarAmount.FindString(text)
	if match == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(match)
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &Quote{Price: price, RawText: text}
}
