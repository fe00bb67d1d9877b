package stats

import (
	"sort"

	"trade-journal-go/internal/models"
)

// DailySeries groups realized profit by calendar date and returns the series
// in chronological order with a running cumulative total. Open trades
// contribute nothing. ISO dates sort lexicographically, so a plain string
// sort gives chronological order.
func DailySeries(trades []models.Trade) []models.SeriesPoint {
	byDate := make(map[string]float64)
	for _, t := range trades {
		if !t.Closed() {
			continue
		}
		byDate[t.Date] += t.Profit()
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]models.SeriesPoint, 0, len(dates))
	var cumulative float64
	for _, d := range dates {
		cumulative += byDate[d]
		series = append(series, models.SeriesPoint{
			Date:       d,
			Profit:     byDate[d],
			Cumulative: cumulative,
		})
	}
	return series
}

// RankBySymbol groups realized profit by symbol, best performers first.
// Symbols tied on total profit keep their first-encounter order.
func RankBySymbol(trades []models.Trade) []models.SymbolPerformance {
	index := make(map[string]int)
	ranking := make([]models.SymbolPerformance, 0)

	for _, t := range trades {
		if !t.Closed() {
			continue
		}
		i, ok := index[t.Symbol]
		if !ok {
			i = len(ranking)
			index[t.Symbol] = i
			ranking = append(ranking, models.SymbolPerformance{Symbol: t.Symbol})
		}
		ranking[i].TotalProfit += t.Profit()
		ranking[i].Trades++
	}

	for i := range ranking {
		ranking[i].AvgProfit = ranking[i].TotalProfit / float64(ranking[i].Trades)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalProfit > ranking[j].TotalProfit
	})
	return ranking
}
