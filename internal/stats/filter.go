package stats

import (
	"strings"

	"trade-journal-go/internal/models"
)

// Filter returns the trades whose symbol contains symbolQuery
// (case-insensitive; an empty query matches everything) and whose timestamp
// falls inside the window. Input order is preserved and the input slice is
// never mutated.
func Filter(trades []models.Trade, symbolQuery string, w Window) []models.Trade {
	query := strings.ToUpper(strings.TrimSpace(symbolQuery))

	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if query != "" && !strings.Contains(strings.ToUpper(t.Symbol), query) {
			continue
		}
		if !w.Contains(t.Timestamp) {
			continue
		}
		out = append(out, t)
	}
	return out
}
