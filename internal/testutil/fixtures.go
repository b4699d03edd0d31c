package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"coinwatch/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal, failing loudly on typos in test tables.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewTestHolding builds a holding with the given quantity, average and current price.
func NewTestHolding(id, quantity, averagePrice, currentPrice string) models.Holding {
	return models.Holding{
		ID:           id,
		Name:         id + " Coin",
		Ticker:       id,
		ImageURL:     fmt.Sprintf("https://img.example.com/%s.png", id),
		Quantity:     Dec(quantity),
		AveragePrice: Dec(averagePrice),
		CurrentPrice: Dec(currentPrice),
	}
}

// NewTestTransaction builds a transaction with a unique ID and increasing timestamp.
func NewTestTransaction(coinID string, typ models.TransactionType, quantity, price string) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:        fmt.Sprintf("tx-%d", n),
		CoinID:    coinID,
		CoinName:  coinID + " Coin",
		Type:      typ,
		Quantity:  Dec(quantity),
		Price:     Dec(price),
		Timestamp: 1700000000000 + n,
	}
}

// SeedKV writes a raw value under key, bypassing any codec.
func SeedKV(t *testing.T, db *gorm.DB, key, value string) {
	t.Helper()

	entry := &models.KVEntry{Key: key, Value: value}
	if err := db.Save(entry).Error; err != nil {
		t.Fatalf("failed to seed key %q: %v", key, err)
	}
}
