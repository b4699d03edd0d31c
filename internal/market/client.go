// Package market provides an HTTP client for the LiveCoinWatch market data API.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coinwatch/internal/models"

	"github.com/shopspring/decimal"
)

const defaultColor = "#666666"

// coinRow is a coin as returned by /coins/list with meta enabled.
type coinRow struct {
	Code   string              `json:"code"`
	Name   string              `json:"name"`
	Symbol string              `json:"symbol"`
	Rank   int                 `json:"rank"`
	Color  string              `json:"color"`
	Png32  string              `json:"png32"`
	Rate   decimal.NullDecimal `json:"rate"`
	Cap    decimal.NullDecimal `json:"cap"`
	Delta  struct {
		Day decimal.NullDecimal `json:"day"`
	} `json:"delta"`
}

type quoteRow struct {
	Code string              `json:"code"`
	Rate decimal.NullDecimal `json:"rate"`
}

type historyRow struct {
	Date int64               `json:"date"`
	Rate decimal.NullDecimal `json:"rate"`
}

// Client communicates with the market data API.
type Client struct {
	baseURL    string
	apiKey     string
	currency   string
	httpClient *http.Client
}

// NewClient creates a new market data client quoting prices in currency.
func NewClient(baseURL, apiKey, currency string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		currency:   currency,
		httpClient: httpClient,
	}
}

// ListCoins fetches one page of coins ordered by market cap rank.
func (c *Client) ListCoins(ctx context.Context, offset, limit int) ([]models.Coin, error) {
	body := map[string]interface{}{
		"currency": c.currency,
		"sort":     "rank",
		"order":    "ascending",
		"offset":   offset,
		"limit":    limit,
		"meta":     true,
	}

	var rows []coinRow
	if err := c.post(ctx, "/coins/list", body, &rows); err != nil {
		return nil, fmt.Errorf("listing coins: %w", err)
	}

	coins := make([]models.Coin, 0, len(rows))
	for _, row := range rows {
		coins = append(coins, transformCoin(row))
	}
	return coins, nil
}

// Quotes fetches the current price of every coin in ids. Coins the API does
// not know, or returns without a rate, are absent from the result.
func (c *Client) Quotes(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	quotes := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return quotes, nil
	}

	body := map[string]interface{}{
		"codes":    ids,
		"currency": c.currency,
		"sort":     "rank",
		"order":    "ascending",
		"offset":   0,
		"limit":    len(ids),
		"meta":     false,
	}

	var rows []quoteRow
	if err := c.post(ctx, "/coins/map", body, &rows); err != nil {
		return nil, fmt.Errorf("fetching quotes: %w", err)
	}

	for _, row := range rows {
		if row.Rate.Valid {
			quotes[row.Code] = row.Rate.Decimal
		}
	}
	return quotes, nil
}

// History fetches the price samples of one coin between start and end.
func (c *Client) History(ctx context.Context, id string, start, end time.Time) ([]models.PricePoint, error) {
	body := map[string]interface{}{
		"currency": c.currency,
		"code":     id,
		"start":    start.UnixMilli(),
		"end":      end.UnixMilli(),
		"meta":     false,
	}

	var result struct {
		History []historyRow `json:"history"`
	}
	if err := c.post(ctx, "/coins/single/history", body, &result); err != nil {
		return nil, fmt.Errorf("fetching history for %s: %w", id, err)
	}

	points := make([]models.PricePoint, 0, len(result.History))
	for _, row := range result.History {
		points = append(points, models.PricePoint{
			Time:  time.UnixMilli(row.Date).UTC(),
			Price: row.Rate.Decimal,
		})
	}
	return points, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func transformCoin(row coinRow) models.Coin {
	coin := models.Coin{
		ID:        row.Code,
		Name:      row.Name,
		Ticker:    cleanTicker(row.Code),
		Rank:      row.Rank,
		Price:     row.Rate.Decimal,
		MarketCap: row.Cap.Decimal,
		Icon:      row.Symbol,
		ImageURL:  row.Png32,
		Color:     row.Color,
	}
	if coin.ID == "" {
		coin.ID = "unknown"
	}
	if coin.Name == "" {
		coin.Name = "Unknown"
	}
	if coin.Ticker == "" {
		coin.Ticker = "N/A"
	}
	if row.Delta.Day.Valid && !row.Delta.Day.Decimal.IsZero() {
		// delta.day is a ratio to the previous day, 1.05 means +5%.
		coin.Change24h = row.Delta.Day.Decimal.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	}
	if coin.Icon == "" {
		if row.Code != "" {
			coin.Icon = row.Code[:1]
		} else {
			coin.Icon = "?"
		}
	}
	if coin.Color == "" {
		coin.Color = defaultColor
	}
	return coin
}

// cleanTicker trims wrapping underscores from a coin code and turns inner
// ones into spaces, e.g. "__PI_NET__" becomes "PI NET".
func cleanTicker(code string) string {
	return strings.ReplaceAll(strings.Trim(code, "_"), "_", " ")
}
