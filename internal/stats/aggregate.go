package stats

import "trade-journal-go/internal/models"

// Aggregate reduces a trade list into summary metrics. It never fails: an
// empty input, or one with no closed trades, yields zeroes across the board.
func Aggregate(trades []models.Trade) models.TradeStats {
	stats := models.TradeStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	var (
		buySum     float64
		sellSum    float64
		closed     int
		wins       int
		best       float64
		worst      float64
		haveClosed bool
	)

	for _, t := range trades {
		buySum += t.BuyPrice
		if !t.Closed() {
			continue
		}
		closed++
		sellSum += *t.SellPrice

		profit := t.Profit()
		stats.TotalProfit += profit
		if profit > 0 {
			wins++
		}
		if !haveClosed || profit > best {
			best = profit
		}
		if !haveClosed || profit < worst {
			worst = profit
		}
		haveClosed = true
	}

	stats.OpenPositions = len(trades) - closed
	stats.AvgBuyPrice = buySum / float64(len(trades))
	if closed > 0 {
		stats.AvgSellPrice = sellSum / float64(closed)
		stats.AvgProfitPerTrade = stats.TotalProfit / float64(closed)
		stats.WinRate = 100 * float64(wins) / float64(closed)
		stats.BestTrade = best
		stats.WorstTrade = worst
	}
	return stats
}
