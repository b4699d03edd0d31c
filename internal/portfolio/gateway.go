package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/kvstore"
	"coinwatch/internal/models"

	"github.com/shopspring/decimal"
)

// Storage keys. They match the layout written by the mobile app so that
// exported data loads unchanged.
const (
	KeyHoldings     = "@crypto_portfolio"
	KeyTransactions = "@crypto_transactions"
	KeyBalance      = "@crypto_balance"
)

// AllKeys lists every key owned by the ledger.
var AllKeys = []string{KeyHoldings, KeyTransactions, KeyBalance}

// InitialBalance is the cash a fresh portfolio starts with.
var InitialBalance = decimal.NewFromInt(10000)

// State is the persisted portion of a portfolio.
type State struct {
	Holdings     []models.Holding
	Transactions []models.Transaction
	Cash         decimal.Decimal
}

// DefaultState is the state of a portfolio that has never traded.
func DefaultState() State {
	return State{
		Holdings:     []models.Holding{},
		Transactions: []models.Transaction{},
		Cash:         InitialBalance,
	}
}

// Gateway encodes portfolio state to and from a kvstore.Store.
type Gateway struct {
	store kvstore.Store
}

// NewGateway creates a new Gateway.
func NewGateway(store kvstore.Store) *Gateway {
	return &Gateway{store: store}
}

// LoadError reports the keys Load could not use.
type LoadError struct {
	// Unreadable lists keys the store failed to return. Their stored
	// values may be intact and must not be overwritten with defaults.
	Unreadable []string
	err        error
}

func (e *LoadError) Error() string { return e.err.Error() }

func (e *LoadError) Unwrap() error { return e.err }

// Load reads all three keys. A missing, unreadable or malformed key yields
// its default; the returned error, a *LoadError, describes every such
// problem. The State is always usable.
func (g *Gateway) Load(ctx context.Context) (State, error) {
	state := DefaultState()
	var errs []error
	var unreadable []string

	read := func(key string) (string, bool) {
		raw, ok, err := g.store.Get(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", key, err))
			unreadable = append(unreadable, key)
			return "", false
		}
		return raw, ok
	}

	if raw, ok := read(KeyHoldings); ok {
		holdings, err := decodeHoldings(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyHoldings, err))
		} else {
			state.Holdings = holdings
		}
	}

	if raw, ok := read(KeyTransactions); ok {
		var txs []models.Transaction
		if err := json.Unmarshal([]byte(raw), &txs); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyTransactions, err))
		} else if txs != nil {
			state.Transactions = txs
		}
	}

	if raw, ok := read(KeyBalance); ok {
		var cash decimal.Decimal
		if err := json.Unmarshal([]byte(raw), &cash); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyBalance, err))
		} else {
			state.Cash = cash
		}
	}

	if len(errs) == 0 {
		return state, nil
	}
	return state, &LoadError{Unreadable: unreadable, err: errors.Join(errs...)}
}

// Save encodes the requested keys of s and writes them in a single SetMany
// call. With no keys every key is written.
func (g *Gateway) Save(ctx context.Context, s State, keys ...string) error {
	if len(keys) == 0 {
		keys = AllKeys
	}

	entries := make(map[string]string, len(keys))
	for _, key := range keys {
		raw, err := encodeKey(s, key)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
		}
		entries[key] = raw
	}

	if err := g.store.SetMany(ctx, entries); err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

func encodeKey(s State, key string) (string, error) {
	switch key {
	case KeyHoldings:
		holdings := s.Holdings
		if holdings == nil {
			holdings = []models.Holding{}
		}
		b, err := json.Marshal(holdings)
		return string(b), err
	case KeyTransactions:
		txs := s.Transactions
		if txs == nil {
			txs = []models.Transaction{}
		}
		b, err := json.Marshal(txs)
		return string(b), err
	case KeyBalance:
		return s.Cash.String(), nil
	default:
		return "", fmt.Errorf("unknown portfolio key %q", key)
	}
}

// decodeHoldings rejects entries that would break the ledger's invariants
// instead of loading a partially valid collection.
func decodeHoldings(raw string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := json.Unmarshal([]byte(raw), &holdings); err != nil {
		return nil, err
	}
	if holdings == nil {
		return []models.Holding{}, nil
	}

	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		switch {
		case h.ID == "":
			return nil, errors.New("holding without id")
		case seen[h.ID]:
			return nil, fmt.Errorf("duplicate holding %q", h.ID)
		case !h.Quantity.IsPositive():
			return nil, fmt.Errorf("holding %q has non-positive quantity", h.ID)
		case h.AveragePrice.IsNegative() || h.CurrentPrice.IsNegative():
			return nil, fmt.Errorf("holding %q has a negative price", h.ID)
		}
		seen[h.ID] = true
	}
	return holdings, nil
}
