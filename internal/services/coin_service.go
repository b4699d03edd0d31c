package services

import (
	"context"
	"time"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/logger"
	"coinwatch/internal/models"
)

// DefaultCoinPageSize matches the page size of the mobile coin list.
const DefaultCoinPageSize = 50

// historyRanges maps the supported chart ranges to their lookback.
var historyRanges = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"1y":  365 * 24 * time.Hour,
}

// coinService handles market data lookups.
type coinService struct {
	market    MarketProvider
	portfolio PortfolioServicer
	now       func() time.Time
}

// NewCoinService creates a new CoinServicer.
func NewCoinService(market MarketProvider, portfolio PortfolioServicer) CoinServicer {
	return &coinService{market: market, portfolio: portfolio, now: time.Now}
}

// ListCoins returns one page of coins by rank. HasMore is set when the
// provider returned a full page.
func (s *coinService) ListCoins(ctx context.Context, page, pageSize int) (*CoinPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultCoinPageSize
	}

	coins, err := s.market.ListCoins(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMarketUnavailable, err)
	}
	if coins == nil {
		coins = []models.Coin{}
	}

	return &CoinPage{
		Coins:    coins,
		Page:     page,
		PageSize: pageSize,
		HasMore:  len(coins) == pageSize,
	}, nil
}

// History returns the price samples of coinID over rangeName.
func (s *coinService) History(ctx context.Context, coinID, rangeName string) ([]models.PricePoint, error) {
	if coinID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Coin id is required")
	}
	lookback, ok := historyRanges[rangeName]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Range must be one of 24h, 7d, 30d, 1y")
	}

	end := s.now()
	points, err := s.market.History(ctx, coinID, end.Add(-lookback), end)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMarketUnavailable, err)
	}
	if points == nil {
		points = []models.PricePoint{}
	}
	return points, nil
}

// RefreshPortfolioPrices quotes every held coin and marks the portfolio to
// market. It returns the number of holdings updated.
func (s *coinService) RefreshPortfolioPrices(ctx context.Context) (int, error) {
	ids := s.portfolio.HoldingIDs()
	if len(ids) == 0 {
		return 0, nil
	}

	quotes, err := s.market.Quotes(ctx, ids)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrMarketUnavailable, err)
	}

	updated := s.portfolio.UpdatePrices(ctx, quotes)
	if missing := len(ids) - len(quotes); missing > 0 {
		logger.Get().Warnw("Market returned no quote for some holdings", "held", len(ids), "missing", missing)
	}
	return updated, nil
}
