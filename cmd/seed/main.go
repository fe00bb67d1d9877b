package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/storage"
)

// Development fixture generator. Sample data is written through the
// repository like any user entry; it never lives in the journal's load path.
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN, cfg.Storage.Namespace)
	if err != nil {
		log.Fatal("Failed to open journal store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	repo := journal.NewRepository(store, log)
	if err := repo.Load(ctx); err != nil {
		log.Fatal("Failed to load journal", zap.Error(err))
	}

	if existing := len(repo.List()); existing > 0 {
		log.Warn("Journal is not empty, seeding anyway", zap.Int("existing", existing))
	}

	rng := rand.New(rand.NewSource(42))
	created := 0
	for _, in := range sampleTrades(rng) {
		if _, err := repo.Create(ctx, in); err != nil {
			log.Error("Failed to seed trade", zap.String("symbol", in.Symbol), zap.Error(err))
			continue
		}
		created++
	}

	log.Info("Seeding complete", zap.Int("created", created))
}

// sampleTrades builds a mixed set of open and closed positions spread across
// recent months.
func sampleTrades(rng *rand.Rand) []journal.TradeInput {
	symbols := []string{"AAPL", "MSFT", "GOOGL", "NVDA", "AMZN", "TSLA", "META", "AMD"}
	dates := []string{
		"2026-05-04", "2026-05-18", "2026-06-01", "2026-06-15",
		"2026-06-29", "2026-07-13", "2026-07-27", "2026-08-10", "2026-08-24",
	}

	var out []journal.TradeInput
	for i := 0; i < 40; i++ {
		buy := 20 + rng.Float64()*480
		in := journal.TradeInput{
			Symbol:   symbols[rng.Intn(len(symbols))],
			BuyPrice: round2(buy),
			Quantity: 1 + rng.Intn(50),
			Date:     dates[rng.Intn(len(dates))],
		}
		// Roughly three quarters of the sample is closed, slightly
		// win-biased.
		if rng.Float64() < 0.75 {
			move := 1 + (rng.Float64()-0.45)*0.3
			sell := round2(buy * move)
			in.SellPrice = &sell
			if sell > in.BuyPrice {
				in.Remarks = "took profit"
			}
		} else {
			in.Remarks = "still holding"
		}
		out = append(out, in)
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
