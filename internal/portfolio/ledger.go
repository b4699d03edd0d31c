// Package portfolio is the paper-trading ledger: holdings with
// weighted-average cost, the cash balance, the transaction log and their
// persistence.
package portfolio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/kvstore"
	"coinwatch/internal/logger"
	"coinwatch/internal/models"
	"coinwatch/internal/uuid"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options configures a Portfolio.
type Options struct {
	// Sync makes every mutation wait for its write before returning.
	Sync bool
	// Retries is the number of extra attempts for a failed write.
	Retries int
	// Backoff is the delay before the first retry; it doubles per attempt.
	Backoff time.Duration
	// Currency is the ISO 4217 code used for display strings.
	Currency string
	// Now overrides the clock used to stamp transactions.
	Now func() time.Time
	// Logger overrides the component logger.
	Logger *zap.SugaredLogger
}

// BuyOrder describes a purchase. Name, Ticker and ImageURL are only used
// when the coin is not held yet.
type BuyOrder struct {
	CoinID   string
	Name     string
	Ticker   string
	ImageURL string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Portfolio owns the in-memory ledger. All methods are safe for concurrent use.
type Portfolio struct {
	mu       sync.RWMutex
	holdings []models.Holding
	cash     decimal.Decimal
	txLog    *TransactionLog

	writer     *writer
	syncWrites bool
	currency   string
	now        func() time.Time
	log        *zap.SugaredLogger

	// unreadable holds keys the store failed to return at startup. While it
	// is non-empty nothing is written, so the stored data survives.
	unreadable []string
}

// Open loads persisted state from store and starts the background writer.
// Unreadable or malformed keys are logged and replaced by their defaults.
// If any key could not be read, persistence stays suspended for the life of
// the Portfolio; restart once the store is reachable again.
func Open(ctx context.Context, store kvstore.Store, opts Options) *Portfolio {
	log := opts.Logger
	if log == nil {
		log = logger.Named("portfolio")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}

	gateway := NewGateway(store)
	state, err := gateway.Load(ctx)
	var unreadable []string
	if err != nil {
		log.Warnw("Loaded portfolio with defaults for unusable keys", "error", err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && len(loadErr.Unreadable) > 0 {
			unreadable = loadErr.Unreadable
			log.Errorw("Portfolio persistence suspended: stored keys could not be read, trades will not be saved until restart",
				"keys", unreadable)
		}
	}

	p := &Portfolio{
		holdings:   state.Holdings,
		cash:       state.Cash,
		txLog:      NewTransactionLog(state.Transactions),
		writer:     newWriter(gateway, opts.Retries, opts.Backoff, log),
		syncWrites: opts.Sync,
		currency:   strings.ToUpper(opts.Currency),
		now:        opts.Now,
		log:        log,
		unreadable: unreadable,
	}

	log.Infow("Portfolio loaded",
		"holdings", len(p.holdings),
		"transactions", p.txLog.Len(),
		"cash", p.cash.String(),
	)
	return p
}

// Buy purchases order.Quantity units at order.Price. The holding's average
// price becomes the volume-weighted mean of all its buys.
func (p *Portfolio) Buy(ctx context.Context, order BuyOrder) (models.Transaction, error) {
	order.CoinID = models.NormalizeCoinID(order.CoinID)
	if err := validateTrade(order.CoinID, order.Quantity, order.Price); err != nil {
		return models.Transaction{}, err
	}
	cost := order.Quantity.Mul(order.Price)

	p.mu.Lock()
	if p.cash.LessThan(cost) {
		p.mu.Unlock()
		return models.Transaction{}, apperrors.ErrInsufficientFunds
	}

	coinName := order.Name
	if i := p.indexOf(order.CoinID); i >= 0 {
		h := &p.holdings[i]
		newQty := h.Quantity.Add(order.Quantity)
		h.AveragePrice = h.CostBasis().Add(cost).Div(newQty)
		h.Quantity = newQty
		h.CurrentPrice = order.Price
		coinName = h.Name
	} else {
		p.holdings = append(p.holdings, models.Holding{
			ID:           order.CoinID,
			Name:         order.Name,
			Ticker:       order.Ticker,
			ImageURL:     order.ImageURL,
			Quantity:     order.Quantity,
			AveragePrice: order.Price,
			CurrentPrice: order.Price,
		})
	}
	p.cash = p.cash.Sub(cost)

	tx := p.record(order.CoinID, coinName, models.TransactionTypeBuy, order.Quantity, order.Price)
	p.persistLocked(AllKeys...)
	p.mu.Unlock()

	p.log.Infow("Buy executed", "coin", tx.CoinID, "quantity", tx.Quantity.String(), "price", tx.Price.String())
	p.waitIfSync(ctx)
	return tx, nil
}

// Sell disposes of quantity units at price. The average price of the
// remaining units is unchanged; selling everything removes the holding.
func (p *Portfolio) Sell(ctx context.Context, coinID string, quantity, price decimal.Decimal) (models.Transaction, error) {
	coinID = models.NormalizeCoinID(coinID)
	if err := validateTrade(coinID, quantity, price); err != nil {
		return models.Transaction{}, err
	}

	p.mu.Lock()
	i := p.indexOf(coinID)
	if i < 0 || p.holdings[i].Quantity.LessThan(quantity) {
		p.mu.Unlock()
		return models.Transaction{}, apperrors.ErrInsufficientHoldings
	}

	h := p.holdings[i]
	remaining := h.Quantity.Sub(quantity)
	if remaining.IsZero() {
		p.holdings = append(p.holdings[:i], p.holdings[i+1:]...)
	} else {
		p.holdings[i].Quantity = remaining
		p.holdings[i].CurrentPrice = price
	}
	p.cash = p.cash.Add(quantity.Mul(price))

	tx := p.record(coinID, h.Name, models.TransactionTypeSell, quantity, price)
	p.persistLocked(AllKeys...)
	p.mu.Unlock()

	p.log.Infow("Sell executed", "coin", tx.CoinID, "quantity", tx.Quantity.String(), "price", tx.Price.String())
	p.waitIfSync(ctx)
	return tx, nil
}

// UpdatePrices overwrites the mark price of every held coin present in
// quotes and returns how many holdings changed. Negative quotes are ignored.
func (p *Portfolio) UpdatePrices(ctx context.Context, quotes map[string]decimal.Decimal) int {
	marks := make(map[string]decimal.Decimal, len(quotes))
	for id, price := range quotes {
		marks[models.NormalizeCoinID(id)] = price
	}

	p.mu.Lock()
	updated := 0
	for i := range p.holdings {
		price, ok := marks[p.holdings[i].ID]
		if !ok {
			continue
		}
		if price.IsNegative() {
			p.log.Warnw("Ignoring negative quote", "coin", p.holdings[i].ID, "price", price.String())
			continue
		}
		p.holdings[i].CurrentPrice = price
		updated++
	}
	if updated > 0 {
		p.persistLocked(KeyHoldings)
	}
	p.mu.Unlock()

	if updated > 0 {
		p.waitIfSync(ctx)
	}
	return updated
}

// Holdings returns the holdings in the order they were first bought.
func (p *Portfolio) Holdings() []models.Holding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.copyHoldings()
}

// Holding returns the position in coinID.
func (p *Portfolio) Holding(coinID string) (models.Holding, error) {
	coinID = models.NormalizeCoinID(coinID)
	p.mu.RLock()
	defer p.mu.RUnlock()
	if i := p.indexOf(coinID); i >= 0 {
		return p.holdings[i], nil
	}
	return models.Holding{}, apperrors.ErrHoldingNotFound
}

// HoldingIDs returns the ids of every held coin.
func (p *Portfolio) HoldingIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, len(p.holdings))
	for i, h := range p.holdings {
		ids[i] = h.ID
	}
	return ids
}

// Balance returns the cash balance.
func (p *Portfolio) Balance() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cash
}

// Transactions returns the trade history in chronological order.
func (p *Portfolio) Transactions() []models.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.txLog.All()
}

// Snapshot returns a consistent view for valuation.
func (p *Portfolio) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Holdings:      p.copyHoldings(),
		Cash:          p.cash,
		TotalInvested: p.txLog.TotalInvested(),
	}
}

// Summary values the portfolio at current marks.
func (p *Portfolio) Summary() models.PortfolioSummary {
	return Summarize(p.Snapshot(), p.currency)
}

// Errors reports writes that failed after all retries. The channel is
// closed by Close.
func (p *Portfolio) Errors() <-chan error {
	return p.writer.errs
}

// Flush waits until every mutation so far has been written.
func (p *Portfolio) Flush(ctx context.Context) error {
	return p.writer.flush(ctx)
}

// Close flushes pending writes and stops the writer. Mutations after Close
// still apply in memory but are no longer persisted.
func (p *Portfolio) Close(ctx context.Context) error {
	return p.writer.close(ctx)
}

func validateTrade(coinID string, quantity, price decimal.Decimal) error {
	switch {
	case strings.TrimSpace(coinID) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Coin id is required")
	case !quantity.IsPositive():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Quantity must be greater than zero")
	case price.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Price must not be negative")
	}
	return nil
}

// record must be called with mu held.
func (p *Portfolio) record(coinID, coinName string, typ models.TransactionType, quantity, price decimal.Decimal) models.Transaction {
	tx := models.Transaction{
		ID:        uuid.New(),
		CoinID:    coinID,
		CoinName:  coinName,
		Type:      typ,
		Quantity:  quantity,
		Price:     price,
		Timestamp: p.now().UnixMilli(),
	}
	p.txLog.Append(tx)
	return tx
}

// persistLocked hands the current state to the writer. It must be called
// with mu held so snapshots reach the writer in mutation order.
func (p *Portfolio) persistLocked(keys ...string) {
	if len(p.unreadable) > 0 {
		p.log.Errorw("Portfolio change not persisted: stored keys were unreadable at startup",
			"keys", p.unreadable)
		return
	}
	p.writer.submit(State{
		Holdings:     p.copyHoldings(),
		Transactions: p.txLog.All(),
		Cash:         p.cash,
	}, keys...)
}

func (p *Portfolio) waitIfSync(ctx context.Context) {
	if !p.syncWrites {
		return
	}
	if err := p.writer.flush(ctx); err != nil {
		p.log.Errorw("Portfolio write did not complete", "error", err)
	}
}

func (p *Portfolio) indexOf(coinID string) int {
	for i := range p.holdings {
		if p.holdings[i].ID == coinID {
			return i
		}
	}
	return -1
}

func (p *Portfolio) copyHoldings() []models.Holding {
	out := make([]models.Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}
