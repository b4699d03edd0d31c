package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coinwatch/internal/pagination"
	"coinwatch/internal/services"
)

// CoinHandler handles market data requests.
type CoinHandler struct {
	coinService services.CoinServicer
}

// NewCoinHandler creates a new CoinHandler.
func NewCoinHandler(coinService services.CoinServicer) *CoinHandler {
	return &CoinHandler{coinService: coinService}
}

// HistoryQuery holds the chart range.
type HistoryQuery struct {
	Range string `form:"range" binding:"omitempty,history_range"`
}

// ListCoins handles the market listing.
// @Summary     List coins
// @Description Coins ordered by market cap rank
// @Tags        coins
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 100)"
// @Success     200 {object} services.CoinPage "Coins"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /coins [get]
func (h *CoinHandler) ListCoins(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	result, err := h.coinService.ListCoins(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory handles a coin's price chart.
// @Summary     Coin price history
// @Tags        coins
// @Produce     json
// @Param       id    path  string true  "Coin ID"
// @Param       range query string false "24h (default), 7d, 30d or 1y"
// @Success     200 {object} map[string][]models.PricePoint "Price history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /coins/{id}/history [get]
func (h *CoinHandler) GetHistory(c *gin.Context) {
	id, err := coinIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	if q.Range == "" {
		q.Range = "24h"
	}

	points, err := h.coinService.History(c.Request.Context(), id, q.Range)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"coinId": id, "range": q.Range, "history": points})
}
