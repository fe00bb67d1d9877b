package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/storage"
)

// ErrNotFound is returned when no trade carries the requested id.
var ErrNotFound = errors.New("trade not found")

// TradeInput carries the user-supplied fields of a trade. Id and timestamp
// are derived by the repository.
type TradeInput struct {
	Symbol    string   `json:"symbol"`
	BuyPrice  float64  `json:"buy_price"`
	SellPrice *float64 `json:"sell_price,omitempty"`
	Quantity  int      `json:"quantity"`
	Date      string   `json:"date"`
	Remarks   string   `json:"remarks,omitempty"`
}

// Repository owns the canonical trade list. All reads hand out copies;
// mutations replace the record by id, rewrite the whole persisted blob, and
// swap the slice under the lock so no caller can observe a half-applied
// change.
type Repository struct {
	mu     sync.RWMutex
	trades []models.Trade
	store  storage.Store
	logger *zap.Logger
}

// NewRepository wires a repository to its persistence port.
func NewRepository(store storage.Store, logger *zap.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load reads the persisted trade list. A missing or corrupt blob is treated
// as an empty journal, never as a fatal error.
func (r *Repository) Load(ctx context.Context) error {
	data, err := r.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}

	var trades []models.Trade
	if len(data) > 0 {
		if err := json.Unmarshal(data, &trades); err != nil {
			r.logger.Warn("Stored trade list is corrupt, starting empty", zap.Error(err))
			trades = nil
		}
	}

	r.mu.Lock()
	r.trades = trades
	r.mu.Unlock()
	return nil
}

// List returns a copy of the trade list in insertion order.
func (r *Repository) List() []models.Trade {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Trade, len(r.trades))
	copy(out, r.trades)
	return out
}

// Create validates the input, assigns an id, derives the timestamp from the
// trade date, and persists the updated list.
func (r *Repository) Create(ctx context.Context, in TradeInput) (models.Trade, error) {
	trade, err := buildTrade(uuid.NewString(), in)
	if err != nil {
		return models.Trade{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Trade, len(r.trades), len(r.trades)+1)
	copy(next, r.trades)
	next = append(next, trade)

	if err := r.persist(ctx, next); err != nil {
		return models.Trade{}, err
	}
	r.trades = next
	r.logger.Info("Trade created",
		zap.String("id", trade.ID),
		zap.String("symbol", trade.Symbol),
	)
	return trade, nil
}

// Update replaces the trade with the given id. The timestamp is recomputed
// from the (possibly changed) date.
func (r *Repository) Update(ctx context.Context, id string, in TradeInput) (models.Trade, error) {
	trade, err := buildTrade(id, in)
	if err != nil {
		return models.Trade{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Trade, len(r.trades))
	copy(next, r.trades)

	found := false
	for i := range next {
		if next[i].ID == id {
			next[i] = trade
			found = true
			break
		}
	}
	if !found {
		return models.Trade{}, fmt.Errorf("update trade %s: %w", id, ErrNotFound)
	}

	if err := r.persist(ctx, next); err != nil {
		return models.Trade{}, err
	}
	r.trades = next
	return trade, nil
}

// Delete removes the trade with the given id. Ids are never reused.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Trade, 0, len(r.trades))
	found := false
	for _, t := range r.trades {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		return fmt.Errorf("delete trade %s: %w", id, ErrNotFound)
	}

	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.trades = next
	return nil
}

// persist rewrites the full blob. Caller holds the write lock.
func (r *Repository) persist(ctx context.Context, trades []models.Trade) error {
	data, err := json.Marshal(sanitize(trades))
	if err != nil {
		return fmt.Errorf("failed to marshal trades: %w", err)
	}
	if err := r.store.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to persist trades: %w", err)
	}
	return nil
}

// sanitize normalizes any degenerate sell price to "absent" before the list
// goes to storage, so an open position never round-trips as a closed one.
func sanitize(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	copy(out, trades)
	for i := range out {
		if out[i].SellPrice != nil && *out[i].SellPrice < 0 {
			out[i].SellPrice = nil
		}
	}
	return out
}

// buildTrade validates input and derives the id-independent fields.
func buildTrade(id string, in TradeInput) (models.Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return models.Trade{}, errors.New("symbol is required")
	}
	if in.BuyPrice <= 0 {
		return models.Trade{}, errors.New("buy price must be positive")
	}
	if in.Quantity <= 0 {
		return models.Trade{}, errors.New("quantity must be positive")
	}
	if in.SellPrice != nil && *in.SellPrice < 0 {
		return models.Trade{}, errors.New("sell price must not be negative")
	}

	ts, err := models.DateTimestamp(in.Date)
	if err != nil {
		return models.Trade{}, fmt.Errorf("invalid trade date %q: %w", in.Date, err)
	}

	return models.Trade{
		ID:        id,
		Symbol:    symbol,
		BuyPrice:  in.BuyPrice,
		SellPrice: in.SellPrice,
		Quantity:  in.Quantity,
		Date:      in.Date,
		Timestamp: ts,
		Remarks:   in.Remarks,
	}, nil
}
