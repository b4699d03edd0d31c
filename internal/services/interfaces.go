package services

import (
	"context"
	"time"

	"coinwatch/internal/models"
	"coinwatch/internal/portfolio"

	"github.com/shopspring/decimal"
)

// PortfolioServicer defines the contract for the paper-trading ledger.
// *portfolio.Portfolio implements it.
type PortfolioServicer interface {
	Buy(ctx context.Context, order portfolio.BuyOrder) (models.Transaction, error)
	Sell(ctx context.Context, coinID string, quantity, price decimal.Decimal) (models.Transaction, error)
	UpdatePrices(ctx context.Context, quotes map[string]decimal.Decimal) int
	Holdings() []models.Holding
	Holding(coinID string) (models.Holding, error)
	HoldingIDs() []string
	Balance() decimal.Decimal
	Transactions() []models.Transaction
	Summary() models.PortfolioSummary
}

// MarketProvider is the market data source. *market.Client implements it.
type MarketProvider interface {
	ListCoins(ctx context.Context, offset, limit int) ([]models.Coin, error)
	Quotes(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
	History(ctx context.Context, id string, start, end time.Time) ([]models.PricePoint, error)
}

// CoinPage is one page of the market listing.
type CoinPage struct {
	Coins    []models.Coin `json:"coins"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	HasMore  bool          `json:"hasMore"`
}

// CoinServicer defines the contract for market data lookups.
type CoinServicer interface {
	ListCoins(ctx context.Context, page, pageSize int) (*CoinPage, error)
	History(ctx context.Context, coinID, rangeName string) ([]models.PricePoint, error)
	RefreshPortfolioPrices(ctx context.Context) (int, error)
}

// FavoritesServicer defines the contract for bookmarked coins.
type FavoritesServicer interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, favorite models.Favorite) (models.Favorite, error)
	Remove(ctx context.Context, coinID string) error
	IsFavorite(ctx context.Context, coinID string) (bool, error)
}

var _ PortfolioServicer = (*portfolio.Portfolio)(nil)
