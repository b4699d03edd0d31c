package models

import "github.com/shopspring/decimal"

// Holding is the current position in one coin. Display metadata is copied
// from the first purchase; CurrentPrice is the last known mark price.
type Holding struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Ticker       string          `json:"ticker"`
	ImageURL     string          `json:"imageUrl"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

// CostBasis returns quantity × average price.
func (h Holding) CostBasis() decimal.Decimal {
	return h.Quantity.Mul(h.AveragePrice)
}

// MarketValue returns quantity × current price.
func (h Holding) MarketValue() decimal.Decimal {
	return h.Quantity.Mul(h.CurrentPrice)
}
