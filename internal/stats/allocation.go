package stats

import (
	"sort"

	"trade-journal-go/internal/models"
)

// Allocation reduces a trade list into per-symbol deployed capital, open and
// closed positions alike. It weights by buy-side invested amount, answering
// "where is my money", not "where did I make money". Rows are sorted by
// invested amount descending; percentages are all zero when nothing is
// invested.
func Allocation(trades []models.Trade) []models.Holding {
	index := make(map[string]int)
	holdings := make([]models.Holding, 0)
	var totalInvested float64

	for _, t := range trades {
		i, ok := index[t.Symbol]
		if !ok {
			i = len(holdings)
			index[t.Symbol] = i
			holdings = append(holdings, models.Holding{Symbol: t.Symbol})
		}
		invested := t.BuyPrice * float64(t.Quantity)
		holdings[i].Shares += t.Quantity
		holdings[i].InvestedAmount += invested
		totalInvested += invested
	}

	for i := range holdings {
		if holdings[i].Shares > 0 {
			holdings[i].AvgBuyPrice = holdings[i].InvestedAmount / float64(holdings[i].Shares)
		}
		if totalInvested > 0 {
			holdings[i].Percentage = holdings[i].InvestedAmount / totalInvested * 100
		}
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].InvestedAmount > holdings[j].InvestedAmount
	})
	return holdings
}
