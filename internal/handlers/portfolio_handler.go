package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/models"
	"coinwatch/internal/pagination"
	"coinwatch/internal/portfolio"
	"coinwatch/internal/services"
)

// PortfolioHandler handles portfolio-related requests.
type PortfolioHandler struct {
	portfolio   services.PortfolioServicer
	coinService services.CoinServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolio services.PortfolioServicer, coinService services.CoinServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, coinService: coinService}
}

// BuyRequest represents the request payload for a purchase.
type BuyRequest struct {
	CoinID   string          `json:"coinId" binding:"required,coin_id"`
	Name     string          `json:"name" binding:"required,max=200"`
	Ticker   string          `json:"ticker" binding:"max=50"`
	ImageURL string          `json:"imageUrl" binding:"omitempty,url"`
	Quantity decimal.Decimal `json:"quantity" swaggertype:"string" binding:"decimal_gt0"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" binding:"decimal_gte0"`
}

// SellRequest represents the request payload for a sale.
type SellRequest struct {
	CoinID   string          `json:"coinId" binding:"required,coin_id"`
	Quantity decimal.Decimal `json:"quantity" swaggertype:"string" binding:"decimal_gt0"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" binding:"decimal_gte0"`
}

// UpdatePricesRequest carries mark prices keyed by coin id.
type UpdatePricesRequest struct {
	Prices map[string]decimal.Decimal `json:"prices" swaggertype:"object,string" binding:"required,min=1"`
}

// TradeResponse is returned by buy and sell.
type TradeResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Balance     decimal.Decimal    `json:"balance" swaggertype:"string"`
}

// TransactionFilter holds optional filters for the transaction history.
type TransactionFilter struct {
	CoinID string                 `form:"coin_id" binding:"omitempty,coin_id"`
	Type   models.TransactionType `form:"type" binding:"omitempty,oneof=buy sell"`
}

// GetPortfolio handles the portfolio summary.
// @Summary     Portfolio summary
// @Description Cash, holdings value, total value and profit/loss at current marks
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} map[string]models.PortfolioSummary "Portfolio summary"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"portfolio": h.portfolio.Summary()})
}

// ListHoldings handles listing holdings.
// @Summary     List holdings
// @Description Holdings in the order they were first bought
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} map[string][]models.Holding "Holdings"
// @Router      /portfolio/holdings [get]
func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"holdings": h.portfolio.Holdings()})
}

// GetHolding handles fetching a single holding.
// @Summary     Get holding
// @Tags        portfolio
// @Produce     json
// @Param       id path string true "Coin ID"
// @Success     200 {object} map[string]models.Holding "Holding"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Router      /portfolio/holdings/{id} [get]
func (h *PortfolioHandler) GetHolding(c *gin.Context) {
	id, err := coinIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.portfolio.Holding(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// ListTransactions handles the trade history.
// @Summary     List transactions
// @Description Paginated trade history, newest first
// @Tags        portfolio
// @Produce     json
// @Param       coin_id   query string false "Filter by coin id"
// @Param       type      query string false "Filter by side (buy, sell)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /portfolio/transactions [get]
func (h *PortfolioHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	page.Defaults()

	var filter TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter.CoinID = models.NormalizeCoinID(filter.CoinID)

	all := h.portfolio.Transactions()
	newest := make([]models.Transaction, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		tx := all[i]
		if filter.CoinID != "" && tx.CoinID != filter.CoinID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		newest = append(newest, tx)
	}

	c.JSON(http.StatusOK, pagination.Paginate(newest, page))
}

// Buy handles a purchase.
// @Summary     Buy coin
// @Description Buy at the given price; the holding's average cost is volume-weighted
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body BuyRequest true "Order"
// @Success     201 {object} TradeResponse "Executed trade"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     422 {object} ErrorResponse "Insufficient funds"
// @Router      /portfolio/buy [post]
func (h *PortfolioHandler) Buy(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	tx, err := h.portfolio.Buy(c.Request.Context(), portfolio.BuyOrder{
		CoinID:   req.CoinID,
		Name:     req.Name,
		Ticker:   req.Ticker,
		ImageURL: req.ImageURL,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TradeResponse{Transaction: tx, Balance: h.portfolio.Balance()})
}

// Sell handles a sale.
// @Summary     Sell coin
// @Description Sell part or all of a holding; the average cost is unchanged
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body SellRequest true "Order"
// @Success     201 {object} TradeResponse "Executed trade"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     422 {object} ErrorResponse "Insufficient holdings"
// @Router      /portfolio/sell [post]
func (h *PortfolioHandler) Sell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	tx, err := h.portfolio.Sell(c.Request.Context(), req.CoinID, req.Quantity, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TradeResponse{Transaction: tx, Balance: h.portfolio.Balance()})
}

// UpdatePrices handles pushing mark prices.
// @Summary     Update prices
// @Description Overwrite the current price of held coins; unknown ids are ignored
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body UpdatePricesRequest true "Prices by coin id"
// @Success     200 {object} map[string]int "Number of holdings updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /portfolio/prices [put]
func (h *PortfolioHandler) UpdatePrices(c *gin.Context) {
	var req UpdatePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	for id, price := range req.Prices {
		if price.IsNegative() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Price for "+id+" must not be negative"))
			return
		}
	}

	updated := h.portfolio.UpdatePrices(c.Request.Context(), req.Prices)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// RefreshPrices handles marking the portfolio to market.
// @Summary     Refresh prices
// @Description Fetch current quotes for every holding from the market data provider
// @Tags        portfolio
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} map[string]int "Number of holdings updated"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Router      /portfolio/prices/refresh [post]
func (h *PortfolioHandler) RefreshPrices(c *gin.Context) {
	updated, err := h.coinService.RefreshPortfolioPrices(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
