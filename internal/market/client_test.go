package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinwatch/internal/testutil"
)

func newTestServer(t *testing.T, wantPath string, handler func(body map[string]interface{}) interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != wantPath {
			t.Errorf("expected path %s, got %s", wantPath, r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("expected x-api-key test-key, got %q", got)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(handler(body))
	}))
}

func TestListCoins(t *testing.T) {
	server := newTestServer(t, "/coins/list", func(body map[string]interface{}) interface{} {
		if body["currency"] != "USD" || body["sort"] != "rank" || body["meta"] != true {
			t.Errorf("unexpected request body %v", body)
		}
		if body["offset"] != float64(50) || body["limit"] != float64(25) {
			t.Errorf("unexpected paging %v/%v", body["offset"], body["limit"])
		}
		return []map[string]interface{}{
			{
				"code": "BTC", "name": "Bitcoin", "symbol": "₿", "rank": 1, "color": "#fa9e32",
				"png32": "https://lcw.nyc3.cdn.digitaloceanspaces.com/production/currencies/32/btc.png",
				"rate": 67234.56, "cap": 1320000000000, "delta": map[string]interface{}{"day": 1.05},
			},
			{
				"code": "__PI_NET__", "name": "", "rank": 2, "rate": nil,
				"delta": map[string]interface{}{"day": nil},
			},
		}
	})
	defer server.Close()

	c := NewClient(server.URL+"/", "test-key", "USD", server.Client())
	coins, err := c.ListCoins(context.Background(), 50, 25)
	testutil.AssertNoError(t, err)

	if len(coins) != 2 {
		t.Fatalf("expected 2 coins, got %d", len(coins))
	}

	btc := coins[0]
	if btc.ID != "BTC" || btc.Ticker != "BTC" || btc.Icon != "₿" || btc.Color != "#fa9e32" || btc.Rank != 1 {
		t.Errorf("unexpected coin %+v", btc)
	}
	testutil.AssertDecimal(t, "price", btc.Price, "67234.56")
	testutil.AssertDecimal(t, "change", btc.Change24h, "5")

	pi := coins[1]
	if pi.Ticker != "PI NET" {
		t.Errorf("expected cleaned ticker PI NET, got %q", pi.Ticker)
	}
	if pi.Name != "Unknown" || pi.Icon != "_" || pi.Color != defaultColor {
		t.Errorf("expected defaults, got %+v", pi)
	}
	testutil.AssertDecimal(t, "price", pi.Price, "0")
	testutil.AssertDecimal(t, "change", pi.Change24h, "0")
}

func TestListCoinsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", "USD", server.Client())
	if _, err := c.ListCoins(context.Background(), 0, 50); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestQuotes(t *testing.T) {
	server := newTestServer(t, "/coins/map", func(body map[string]interface{}) interface{} {
		codes, _ := body["codes"].([]interface{})
		if len(codes) != 3 || body["meta"] != false {
			t.Errorf("unexpected request body %v", body)
		}
		return []map[string]interface{}{
			{"code": "BTC", "rate": 50000.5},
			{"code": "ETH", "rate": 3000},
			{"code": "DEAD", "rate": nil},
		}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "USD", server.Client())
	quotes, err := c.Quotes(context.Background(), []string{"BTC", "ETH", "DEAD"})
	testutil.AssertNoError(t, err)

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %v", quotes)
	}
	testutil.AssertDecimal(t, "btc", quotes["BTC"], "50000.5")
	testutil.AssertDecimal(t, "eth", quotes["ETH"], "3000")
}

func TestQuotesEmptySkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an empty id list")
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-key", "USD", server.Client())
	quotes, err := c.Quotes(context.Background(), nil)
	testutil.AssertNoError(t, err)
	if len(quotes) != 0 {
		t.Errorf("expected no quotes, got %v", quotes)
	}
}

func TestHistory(t *testing.T) {
	start := time.UnixMilli(1700000000000)
	end := start.Add(24 * time.Hour)

	server := newTestServer(t, "/coins/single/history", func(body map[string]interface{}) interface{} {
		if body["code"] != "ETH" || body["currency"] != "EUR" {
			t.Errorf("unexpected request body %v", body)
		}
		if body["start"] != float64(start.UnixMilli()) || body["end"] != float64(end.UnixMilli()) {
			t.Errorf("unexpected range %v-%v", body["start"], body["end"])
		}
		return map[string]interface{}{
			"history": []map[string]interface{}{
				{"date": 1700000000000, "rate": 1800.25},
				{"date": 1700003600000, "rate": 1810},
			},
		}
	})
	defer server.Close()

	c := NewClient(server.URL, "test-key", "EUR", server.Client())
	points, err := c.History(context.Background(), "ETH", start, end)
	testutil.AssertNoError(t, err)

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Time.Equal(start) {
		t.Errorf("expected first point at %v, got %v", start, points[0].Time)
	}
	testutil.AssertDecimal(t, "rate", points[1].Price, "1810")
}

func TestCleanTicker(t *testing.T) {
	tests := map[string]string{
		"BTC":        "BTC",
		"_PI":        "PI",
		"__PI_NET__": "PI NET",
		"A_B_C":      "A B C",
		"":           "",
	}
	for in, want := range tests {
		if got := cleanTicker(in); got != want {
			t.Errorf("cleanTicker(%q) = %q, want %q", in, got, want)
		}
	}
}
