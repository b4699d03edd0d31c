package portfolio

import (
	"coinwatch/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Snapshot is the read-only input to the valuation functions.
type Snapshot struct {
	Holdings      []models.Holding
	Cash          decimal.Decimal
	TotalInvested decimal.Decimal
}

// HoldingsValue returns Σ quantity×currentPrice.
func HoldingsValue(holdings []models.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// TotalValue returns cash plus the market value of every holding.
func TotalValue(s Snapshot) decimal.Decimal {
	return s.Cash.Add(HoldingsValue(s.Holdings))
}

// TotalProfitLoss measures the portfolio against the initial balance. The
// percentage is relative to total invested and is zero when nothing was bought.
func TotalProfitLoss(s Snapshot) models.ProfitLoss {
	amount := TotalValue(s).Sub(InitialBalance)
	return models.ProfitLoss{
		Amount:     amount,
		Percentage: percentOf(amount, s.TotalInvested),
	}
}

// HoldingProfitLoss returns the unrealized gain of one holding at its current mark.
func HoldingProfitLoss(h models.Holding) models.ProfitLoss {
	amount := h.Quantity.Mul(h.CurrentPrice.Sub(h.AveragePrice))
	return models.ProfitLoss{
		Amount:     amount,
		Percentage: percentOf(amount, h.CostBasis()),
	}
}

// Summarize computes every aggregate in one pass for the API. currency is
// an ISO 4217 code used only for the display strings.
func Summarize(s Snapshot, currency string) models.PortfolioSummary {
	rows := make([]models.HoldingPerformance, 0, len(s.Holdings))
	for _, h := range s.Holdings {
		rows = append(rows, models.HoldingPerformance{
			Holding:     h,
			MarketValue: h.MarketValue(),
			CostBasis:   h.CostBasis(),
			ProfitLoss:  HoldingProfitLoss(h),
		})
	}

	holdingsValue := HoldingsValue(s.Holdings)
	total := s.Cash.Add(holdingsValue)
	pl := TotalProfitLoss(s)

	return models.PortfolioSummary{
		CashBalance:    s.Cash,
		HoldingsValue:  holdingsValue,
		TotalValue:     total,
		TotalInvested:  s.TotalInvested,
		InitialBalance: InitialBalance,
		ProfitLoss:     pl,
		Holdings:       rows,
		Display: models.SummaryDisplay{
			CashBalance: FormatAmount(s.Cash, currency),
			TotalValue:  FormatAmount(total, currency),
			ProfitLoss:  FormatAmount(pl.Amount, currency),
		},
	}
}

// FormatAmount renders d in the currency's conventional format, e.g.
// "$10,000.00". Unknown currency codes fall back to USD.
func FormatAmount(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		currency = money.USD
		cur = money.GetCurrency(currency)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currency).Display()
}

func percentOf(amount, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return amount.Div(base).Mul(hundred)
}
