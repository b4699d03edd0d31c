package models

import "github.com/shopspring/decimal"

// ProfitLoss is an unrealized gain or loss with its percentage.
type ProfitLoss struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// HoldingPerformance is a holding together with its unrealized P&L.
type HoldingPerformance struct {
	Holding
	MarketValue decimal.Decimal `json:"marketValue"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	ProfitLoss  ProfitLoss      `json:"profitLoss"`
}

// PortfolioSummary is the valuation of the whole portfolio at current marks.
type PortfolioSummary struct {
	CashBalance    decimal.Decimal      `json:"cashBalance"`
	HoldingsValue  decimal.Decimal      `json:"holdingsValue"`
	TotalValue     decimal.Decimal      `json:"totalValue"`
	TotalInvested  decimal.Decimal      `json:"totalInvested"`
	InitialBalance decimal.Decimal      `json:"initialBalance"`
	ProfitLoss     ProfitLoss           `json:"profitLoss"`
	Holdings       []HoldingPerformance `json:"holdings"`
	Display        SummaryDisplay       `json:"display"`
}

// SummaryDisplay carries currency-formatted strings for the UI.
type SummaryDisplay struct {
	CashBalance string `json:"cashBalance"`
	TotalValue  string `json:"totalValue"`
	ProfitLoss  string `json:"profitLoss"`
}
