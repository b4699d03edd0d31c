package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/models"
	"coinwatch/internal/portfolio"
	"coinwatch/internal/services"
)

// --- mock portfolio ---

type mockPortfolio struct {
	buyFn          func(order portfolio.BuyOrder) (models.Transaction, error)
	sellFn         func(coinID string, quantity, price decimal.Decimal) (models.Transaction, error)
	updatePricesFn func(quotes map[string]decimal.Decimal) int
	holdings       []models.Holding
	transactions   []models.Transaction
	balance        decimal.Decimal
	summary        models.PortfolioSummary
}

var _ services.PortfolioServicer = (*mockPortfolio)(nil)

func (m *mockPortfolio) Buy(_ context.Context, order portfolio.BuyOrder) (models.Transaction, error) {
	if m.buyFn != nil {
		return m.buyFn(order)
	}
	return models.Transaction{}, nil
}

func (m *mockPortfolio) Sell(_ context.Context, coinID string, quantity, price decimal.Decimal) (models.Transaction, error) {
	if m.sellFn != nil {
		return m.sellFn(coinID, quantity, price)
	}
	return models.Transaction{}, nil
}

func (m *mockPortfolio) UpdatePrices(_ context.Context, quotes map[string]decimal.Decimal) int {
	if m.updatePricesFn != nil {
		return m.updatePricesFn(quotes)
	}
	return 0
}

func (m *mockPortfolio) Holdings() []models.Holding { return m.holdings }

func (m *mockPortfolio) Holding(coinID string) (models.Holding, error) {
	for _, h := range m.holdings {
		if h.ID == coinID {
			return h, nil
		}
	}
	return models.Holding{}, apperrors.ErrHoldingNotFound
}

func (m *mockPortfolio) HoldingIDs() []string {
	ids := make([]string, len(m.holdings))
	for i, h := range m.holdings {
		ids[i] = h.ID
	}
	return ids
}

func (m *mockPortfolio) Balance() decimal.Decimal { return m.balance }

func (m *mockPortfolio) Transactions() []models.Transaction { return m.transactions }

func (m *mockPortfolio) Summary() models.PortfolioSummary { return m.summary }

// --- mock coin service ---

type mockCoinService struct {
	listCoinsFn func(page, pageSize int) (*services.CoinPage, error)
	historyFn   func(coinID, rangeName string) ([]models.PricePoint, error)
	refreshFn   func() (int, error)
}

var _ services.CoinServicer = (*mockCoinService)(nil)

func (m *mockCoinService) ListCoins(_ context.Context, page, pageSize int) (*services.CoinPage, error) {
	if m.listCoinsFn != nil {
		return m.listCoinsFn(page, pageSize)
	}
	return &services.CoinPage{Coins: []models.Coin{}}, nil
}

func (m *mockCoinService) History(_ context.Context, coinID, rangeName string) ([]models.PricePoint, error) {
	if m.historyFn != nil {
		return m.historyFn(coinID, rangeName)
	}
	return []models.PricePoint{}, nil
}

func (m *mockCoinService) RefreshPortfolioPrices(context.Context) (int, error) {
	if m.refreshFn != nil {
		return m.refreshFn()
	}
	return 0, nil
}

// --- router setup ---

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := newTestRouter()
	r.GET("/portfolio", handler.GetPortfolio)
	r.GET("/portfolio/holdings", handler.ListHoldings)
	r.GET("/portfolio/holdings/:id", handler.GetHolding)
	r.GET("/portfolio/transactions", handler.ListTransactions)
	r.POST("/portfolio/buy", handler.Buy)
	r.POST("/portfolio/sell", handler.Sell)
	r.PUT("/portfolio/prices", handler.UpdatePrices)
	r.POST("/portfolio/prices/refresh", handler.RefreshPrices)
	return r
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- tests ---

func TestPortfolioHandler_Buy(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		var got portfolio.BuyOrder
		p := &mockPortfolio{
			balance: dec("5000"),
			buyFn: func(order portfolio.BuyOrder) (models.Transaction, error) {
				got = order
				return models.Transaction{ID: "tx-1", CoinID: order.CoinID, Type: models.TransactionTypeBuy,
					Quantity: order.Quantity, Price: order.Price}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		rec := doRequest(r, "POST", "/portfolio/buy",
			`{"coinId":"BTC","name":"Bitcoin","ticker":"BTC","quantity":0.1,"price":"50000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.CoinID != "BTC" || !got.Quantity.Equal(dec("0.1")) || !got.Price.Equal(dec("50000")) {
			t.Errorf("unexpected order %+v", got)
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["id"] != "tx-1" || tx["type"] != "buy" {
			t.Errorf("unexpected transaction %v", tx)
		}
		if result["balance"] != "5000" {
			t.Errorf("expected balance 5000, got %v", result["balance"])
		}
	})

	t.Run("returns_422_insufficient_funds", func(t *testing.T) {
		p := &mockPortfolio{
			buyFn: func(portfolio.BuyOrder) (models.Transaction, error) {
				return models.Transaction{}, apperrors.ErrInsufficientFunds
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		rec := doRequest(r, "POST", "/portfolio/buy", `{"coinId":"BTC","name":"Bitcoin","quantity":"1","price":"60000"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_FUNDS")
	})

	t.Run("returns_400_on_invalid_body", func(t *testing.T) {
		called := false
		p := &mockPortfolio{buyFn: func(portfolio.BuyOrder) (models.Transaction, error) {
			called = true
			return models.Transaction{}, nil
		}}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		bodies := []string{
			`{"name":"Bitcoin","quantity":"1","price":"1"}`,
			`{"coinId":"BTC","name":"Bitcoin","quantity":"0","price":"1"}`,
			`{"coinId":"BTC","name":"Bitcoin","quantity":"-1","price":"1"}`,
			`{"coinId":"BTC","name":"Bitcoin","quantity":"1","price":"-1"}`,
			`{"coinId":"BTC","name":"Bitcoin","quantity":"abc","price":"1"}`,
			`{"coinId":"B T C","name":"Bitcoin","quantity":"1","price":"1"}`,
		}
		for _, body := range bodies {
			rec := doRequest(r, "POST", "/portfolio/buy", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("body %s: expected 400, got %d", body, rec.Code)
				continue
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		}
		if called {
			t.Error("portfolio must not be called for invalid requests")
		}
	})
}

func TestPortfolioHandler_Sell(t *testing.T) {
	t.Run("returns_201_on_success", func(t *testing.T) {
		p := &mockPortfolio{
			balance: dec("7750"),
			sellFn: func(coinID string, quantity, price decimal.Decimal) (models.Transaction, error) {
				if coinID != "BTC" || !quantity.Equal(dec("0.05")) || !price.Equal(dec("55000")) {
					t.Errorf("unexpected sell %s %s %s", coinID, quantity, price)
				}
				return models.Transaction{ID: "tx-2", Type: models.TransactionTypeSell}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		rec := doRequest(r, "POST", "/portfolio/sell", `{"coinId":"BTC","quantity":"0.05","price":"55000"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["balance"] != "7750" {
			t.Error("expected post-trade balance in response")
		}
	})

	t.Run("returns_422_insufficient_holdings", func(t *testing.T) {
		p := &mockPortfolio{
			sellFn: func(string, decimal.Decimal, decimal.Decimal) (models.Transaction, error) {
				return models.Transaction{}, apperrors.ErrInsufficientHoldings
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		rec := doRequest(r, "POST", "/portfolio/sell", `{"coinId":"ETH","quantity":"1","price":"1"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_HOLDINGS")
	})
}

func TestPortfolioHandler_Reads(t *testing.T) {
	p := &mockPortfolio{
		holdings: []models.Holding{{ID: "BTC", Name: "Bitcoin", Quantity: dec("0.1")}},
		summary:  models.PortfolioSummary{TotalValue: dec("10000"), Display: models.SummaryDisplay{TotalValue: "$10,000.00"}},
	}
	r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

	t.Run("summary", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		summary := parseJSON(t, rec)["portfolio"].(map[string]interface{})
		if summary["totalValue"] != "10000" {
			t.Errorf("unexpected total value %v", summary["totalValue"])
		}
		display := summary["display"].(map[string]interface{})
		if display["totalValue"] != "$10,000.00" {
			t.Errorf("unexpected display %v", display)
		}
	})

	t.Run("holdings", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/holdings", "")
		holdings := parseJSON(t, rec)["holdings"].([]interface{})
		if len(holdings) != 1 {
			t.Errorf("expected 1 holding, got %d", len(holdings))
		}
	})

	t.Run("holding_found", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/holdings/BTC", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		h := parseJSON(t, rec)["holding"].(map[string]interface{})
		if h["name"] != "Bitcoin" {
			t.Errorf("unexpected holding %v", h)
		}
	})

	t.Run("holding_not_found", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/holdings/DOGE", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "HOLDING_NOT_FOUND")
	})
}

func TestPortfolioHandler_ListTransactions(t *testing.T) {
	var txs []models.Transaction
	for i := 1; i <= 5; i++ {
		typ := models.TransactionTypeBuy
		if i%2 == 0 {
			typ = models.TransactionTypeSell
		}
		txs = append(txs, models.Transaction{ID: fmt.Sprintf("tx-%d", i), CoinID: "BTC", Type: typ, Timestamp: int64(i)})
	}
	txs = append(txs, models.Transaction{ID: "tx-6", CoinID: "ETH", Type: models.TransactionTypeBuy, Timestamp: 6})
	r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolio{transactions: txs}, &mockCoinService{}))

	t.Run("newest_first_paginated", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/transactions?page=1&page_size=2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 items, got %d", len(data))
		}
		if data[0].(map[string]interface{})["id"] != "tx-6" {
			t.Errorf("expected newest first, got %v", data[0])
		}
		if result["totalItems"] != float64(6) || result["totalPages"] != float64(3) {
			t.Errorf("unexpected paging metadata %v", result)
		}
	})

	t.Run("filters", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/transactions?coin_id=BTC&type=sell", "")
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 2 {
			t.Fatalf("expected 2 BTC sells, got %d", len(data))
		}
		if data[0].(map[string]interface{})["id"] != "tx-4" {
			t.Errorf("unexpected first item %v", data[0])
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/transactions?type=swap", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid_page_size", func(t *testing.T) {
		rec := doRequest(r, "GET", "/portfolio/transactions?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPortfolioHandler_Prices(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		var got map[string]decimal.Decimal
		p := &mockPortfolio{updatePricesFn: func(q map[string]decimal.Decimal) int {
			got = q
			return 1
		}}
		r := setupPortfolioRouter(NewPortfolioHandler(p, &mockCoinService{}))

		rec := doRequest(r, "PUT", "/portfolio/prices", `{"prices":{"BTC":61000.5,"ETH":"3100"}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["updated"] != float64(1) {
			t.Error("expected updated count")
		}
		if !got["BTC"].Equal(dec("61000.5")) || !got["ETH"].Equal(dec("3100")) {
			t.Errorf("unexpected quotes %v", got)
		}
	})

	t.Run("rejects_empty_and_negative", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolio{}, &mockCoinService{}))
		for _, body := range []string{`{"prices":{}}`, `{}`, `{"prices":{"BTC":"-1"}}`} {
			rec := doRequest(r, "PUT", "/portfolio/prices", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("body %s: expected 400, got %d", body, rec.Code)
			}
		}
	})

	t.Run("refresh", func(t *testing.T) {
		coins := &mockCoinService{refreshFn: func() (int, error) { return 3, nil }}
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolio{}, coins))

		rec := doRequest(r, "POST", "/portfolio/prices/refresh", "")
		if rec.Code != http.StatusOK || parseJSON(t, rec)["updated"] != float64(3) {
			t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh_market_down", func(t *testing.T) {
		coins := &mockCoinService{refreshFn: func() (int, error) {
			return 0, apperrors.Wrap(apperrors.ErrMarketUnavailable, fmt.Errorf("timeout"))
		}}
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolio{}, coins))

		rec := doRequest(r, "POST", "/portfolio/prices/refresh", "")
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MARKET_UNAVAILABLE")
	})
}
