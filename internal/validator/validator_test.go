package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type tradeRequest struct {
	CoinID   string          `validate:"required,coin_id"`
	Quantity decimal.Decimal `validate:"decimal_gt0"`
	Price    decimal.Decimal `validate:"decimal_gte0"`
}

type historyRequest struct {
	Range string `validate:"history_range"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	register(v)
	return v
}

func TestTradeValidation(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		req     tradeRequest
		wantErr bool
	}{
		{"valid", tradeRequest{"BTC", decimal.RequireFromString("0.1"), decimal.NewFromInt(50000)}, false},
		{"free price allowed", tradeRequest{"BTC", decimal.NewFromInt(1), decimal.Zero}, false},
		{"underscore ticker", tradeRequest{"_PI", decimal.NewFromInt(1), decimal.NewFromInt(1)}, false},
		{"zero quantity", tradeRequest{"BTC", decimal.Zero, decimal.NewFromInt(1)}, true},
		{"negative quantity", tradeRequest{"BTC", decimal.NewFromInt(-1), decimal.NewFromInt(1)}, true},
		{"negative price", tradeRequest{"BTC", decimal.NewFromInt(1), decimal.NewFromInt(-5)}, true},
		{"bad coin id", tradeRequest{"BTC COIN", decimal.NewFromInt(1), decimal.NewFromInt(1)}, true},
		{"empty coin id", tradeRequest{"", decimal.NewFromInt(1), decimal.NewFromInt(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHistoryRangeValidation(t *testing.T) {
	v := newValidator()
	for _, r := range []string{"24h", "7d", "30d", "1y"} {
		if err := v.Struct(historyRequest{Range: r}); err != nil {
			t.Errorf("expected %q to be valid: %v", r, err)
		}
	}
	if err := v.Struct(historyRequest{Range: "5m"}); err == nil {
		t.Error("expected 5m to be rejected")
	}
}
