package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the side of a trade.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// Valid reports whether t is a known trade side.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Transaction is an immutable record of one executed buy or sell.
// Timestamp is in unix milliseconds.
type Transaction struct {
	ID        string          `json:"id"`
	CoinID    string          `json:"coinId"`
	CoinName  string          `json:"coinName"`
	Type      TransactionType `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

// Amount returns quantity × price.
func (t Transaction) Amount() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// Time returns the execution time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}
