package models

// TradeStats holds summary metrics derived from a trade list.
// It is recomputed on every query and never persisted.
type TradeStats struct {
	TotalProfit       float64 `json:"total_profit"`
	AvgBuyPrice       float64 `json:"avg_buy_price"`
	AvgSellPrice      float64 `json:"avg_sell_price"`
	AvgProfitPerTrade float64 `json:"avg_profit_per_trade"`
	WinRate           float64 `json:"win_rate"` // percentage, 0-100
	TotalTrades       int     `json:"total_trades"`
	OpenPositions     int     `json:"open_positions"`
	BestTrade         float64 `json:"best_trade"`
	WorstTrade        float64 `json:"worst_trade"`
}

// SeriesPoint is one entry of the daily realized-profit series.
type SeriesPoint struct {
	Date       string  `json:"date"`
	Profit     float64 `json:"profit"`
	Cumulative float64 `json:"cumulative"`
}

// SymbolPerformance aggregates realized profit for one symbol.
type SymbolPerformance struct {
	Symbol      string  `json:"symbol"`
	TotalProfit float64 `json:"total_profit"`
	Trades      int     `json:"trades"`
	AvgProfit   float64 `json:"avg_profit"`
}

// Holding describes the capital deployed into one symbol, open and
// closed positions alike.
type Holding struct {
	Symbol         string  `json:"symbol"`
	Shares         int     `json:"shares"`
	InvestedAmount float64 `json:"invested_amount"`
	AvgBuyPrice    float64 `json:"avg_buy_price"`
	Percentage     float64 `json:"percentage"`
}
