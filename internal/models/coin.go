package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coin is a market listing row as shown in the coin list.
type Coin struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Ticker    string          `json:"ticker"`
	Rank      int             `json:"rank"`
	Price     decimal.Decimal `json:"price"`
	MarketCap decimal.Decimal `json:"marketCap"`
	Change24h decimal.Decimal `json:"change"`
	Icon      string          `json:"icon"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Color     string          `json:"color"`
}

// PricePoint is one sample of a coin's price history.
type PricePoint struct {
	Time  time.Time       `json:"time"`
	Price decimal.Decimal `json:"price"`
}

// Favorite is a bookmarked coin.
type Favorite struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	ImageURL string `json:"imageUrl"`
}

// NormalizeCoinID returns the canonical form of a coin id: trimmed and
// upper-case, matching the codes the market data provider returns.
func NormalizeCoinID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
