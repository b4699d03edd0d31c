package scheduler

import (
	"context"

	"coinwatch/internal/logger"
)

// PriceRefresher marks the portfolio to market.
type PriceRefresher interface {
	RefreshPortfolioPrices(ctx context.Context) (int, error)
}

// PriceRefreshJob periodically updates the current price of every holding.
type PriceRefreshJob struct {
	refresher PriceRefresher
}

// NewPriceRefreshJob creates a new PriceRefreshJob.
func NewPriceRefreshJob(refresher PriceRefresher) *PriceRefreshJob {
	return &PriceRefreshJob{refresher: refresher}
}

// Name returns the job name.
func (j *PriceRefreshJob) Name() string { return "price_refresh" }

// Run refreshes prices once.
func (j *PriceRefreshJob) Run(ctx context.Context) error {
	updated, err := j.refresher.RefreshPortfolioPrices(ctx)
	if err != nil {
		return err
	}
	logger.Get().Debugw("Portfolio prices refreshed", "updated", updated)
	return nil
}
