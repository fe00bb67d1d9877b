package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"trade-journal-go/internal/ai"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Open the journal store and load the trade list once at startup.
	store, err := storage.NewSQLiteStore(cfg.Storage.DSN, cfg.Storage.Namespace)
	if err != nil {
		log.Fatal("Failed to open journal store", zap.Error(err))
	}
	defer store.Close()

	repo := journal.NewRepository(store, log)
	if err := repo.Load(context.Background()); err != nil {
		log.Fatal("Failed to load journal", zap.Error(err))
	}
	log.Info("Journal loaded", zap.Int("trades", len(repo.List())))

	aiClient := ai.NewClient(&cfg.AI, log)

	// Setup HTTP server
	mux := http.NewServeMux()

	// Create a handler that has access to the logger, repository and AI client
	apiHandler := NewAPIHandler(log, repo, aiClient)

	// API endpoints
	mux.HandleFunc("GET /api/trades", apiHandler.ListTradesHandler)
	mux.HandleFunc("POST /api/trades", apiHandler.CreateTradeHandler)
	mux.HandleFunc("PUT /api/trades/{id}", apiHandler.UpdateTradeHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", apiHandler.DeleteTradeHandler)
	mux.HandleFunc("GET /api/statistics", apiHandler.StatisticsHandler)
	mux.HandleFunc("GET /api/series", apiHandler.SeriesHandler)
	mux.HandleFunc("GET /api/rankings", apiHandler.RankingsHandler)
	mux.HandleFunc("GET /api/allocation", apiHandler.AllocationHandler)
	mux.HandleFunc("POST /api/analysis", apiHandler.AnalysisHandler)
	mux.HandleFunc("GET /api/price/{symbol}", apiHandler.PriceHandler)

	// Static file serving for CSS, JS, etc.
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// HTML template serving
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/templates/index.html")
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting web server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("Web server failed", zap.Error(err))
	}
}
