package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func fptr(v float64) *float64 { return &v }

// mkTrade builds a trade with the timestamp derived from its date, the way
// the repository would.
func mkTrade(symbol string, buy float64, sell *float64, qty int, date string) models.Trade {
	ts, err := models.DateTimestamp(date)
	if err != nil {
		panic(err)
	}
	return models.Trade{
		ID:        symbol + "-" + date,
		Symbol:    symbol,
		BuyPrice:  buy,
		SellPrice: sell,
		Quantity:  qty,
		Date:      date,
		Timestamp: ts,
	}
}

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name     string
		trades   []models.Trade
		expected models.TradeStats
	}{
		{
			name: "Mixed win and loss",
			trades: []models.Trade{
				mkTrade("AAPL", 100, fptr(150), 10, "2024-01-01"),
				mkTrade("MSFT", 50, fptr(40), 5, "2024-01-02"),
			},
			expected: models.TradeStats{
				TotalProfit:       450, // 500 - 50
				AvgBuyPrice:       75,
				AvgSellPrice:      95,
				AvgProfitPerTrade: 225,
				WinRate:           50,
				TotalTrades:       2,
				OpenPositions:     0,
				BestTrade:         500,
				WorstTrade:        -50,
			},
		},
		{
			name: "Single open position has no closed-trade metrics",
			trades: []models.Trade{
				mkTrade("AAPL", 10, nil, 1, "2024-01-01"),
			},
			expected: models.TradeStats{
				AvgBuyPrice:   10,
				TotalTrades:   1,
				OpenPositions: 1,
			},
		},
		{
			name:     "Empty input yields all zeroes",
			trades:   nil,
			expected: models.TradeStats{},
		},
		{
			name: "All losers",
			trades: []models.Trade{
				mkTrade("TSLA", 200, fptr(180), 2, "2024-03-01"),
				mkTrade("NVDA", 500, fptr(450), 1, "2024-03-02"),
			},
			expected: models.TradeStats{
				TotalProfit:       -90, // -40 + -50
				AvgBuyPrice:       350,
				AvgSellPrice:      315,
				AvgProfitPerTrade: -45,
				WinRate:           0,
				TotalTrades:       2,
				BestTrade:         -40,
				WorstTrade:        -50,
			},
		},
		{
			name: "Break-even trade is not a win",
			trades: []models.Trade{
				mkTrade("AAPL", 100, fptr(100), 10, "2024-01-01"),
			},
			expected: models.TradeStats{
				AvgBuyPrice:  100,
				AvgSellPrice: 100,
				TotalTrades:  1,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Aggregate(tc.trades)

			assert.InDelta(t, tc.expected.TotalProfit, got.TotalProfit, 1e-9)
			assert.InDelta(t, tc.expected.AvgBuyPrice, got.AvgBuyPrice, 1e-9)
			assert.InDelta(t, tc.expected.AvgSellPrice, got.AvgSellPrice, 1e-9)
			assert.InDelta(t, tc.expected.AvgProfitPerTrade, got.AvgProfitPerTrade, 1e-9)
			assert.InDelta(t, tc.expected.WinRate, got.WinRate, 1e-9)
			assert.Equal(t, tc.expected.TotalTrades, got.TotalTrades)
			assert.Equal(t, tc.expected.OpenPositions, got.OpenPositions)
			assert.InDelta(t, tc.expected.BestTrade, got.BestTrade, 1e-9)
			assert.InDelta(t, tc.expected.WorstTrade, got.WorstTrade, 1e-9)
		})
	}
}

func TestAggregateInvariants(t *testing.T) {
	trades := []models.Trade{
		mkTrade("AAPL", 100, fptr(150), 10, "2024-01-01"),
		mkTrade("AAPL", 120, nil, 4, "2024-01-05"),
		mkTrade("MSFT", 50, fptr(40), 5, "2024-01-02"),
		mkTrade("NVDA", 300, fptr(300), 2, "2024-02-10"),
		mkTrade("TSLA", 180, nil, 3, "2024-02-11"),
	}

	got := Aggregate(trades)

	closed := 0
	var manualProfit float64
	for i := range trades {
		if trades[i].Closed() {
			closed++
			manualProfit += (*trades[i].SellPrice - trades[i].BuyPrice) * float64(trades[i].Quantity)
		}
	}

	assert.Equal(t, got.TotalTrades, got.OpenPositions+closed)
	assert.GreaterOrEqual(t, got.WinRate, 0.0)
	assert.LessOrEqual(t, got.WinRate, 100.0)
	assert.InDelta(t, manualProfit, got.TotalProfit, 1e-9)

	require.GreaterOrEqual(t, got.BestTrade, got.WorstTrade)
}

func TestAggregateWinRateZeroOnlyWithoutClosedTrades(t *testing.T) {
	open := []models.Trade{
		mkTrade("AAPL", 10, nil, 1, "2024-01-01"),
		mkTrade("MSFT", 20, nil, 2, "2024-01-02"),
	}
	assert.Zero(t, Aggregate(open).WinRate)

	oneWin := append(open, mkTrade("NVDA", 10, fptr(11), 1, "2024-01-03"))
	assert.InDelta(t, 100.0, Aggregate(oneWin).WinRate, 1e-9)
}
