// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Market data coin codes, e.g. "BTC" or "_PI".
var coinIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,32}$`)

var historyRanges = map[string]bool{"24h": true, "7d": true, "30d": true, "1y": true}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	// Decimals are validated through their string form; struct-typed
	// fields would otherwise skip field-level tags.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("coin_id", validateCoinID)
	_ = v.RegisterValidation("decimal_gt0", validateDecimalGT0)
	_ = v.RegisterValidation("decimal_gte0", validateDecimalGTE0)
	_ = v.RegisterValidation("history_range", validateHistoryRange)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func validateCoinID(fl validator.FieldLevel) bool {
	return coinIDRegex.MatchString(fl.Field().String())
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive()
}

func validateDecimalGTE0(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}

func validateHistoryRange(fl validator.FieldLevel) bool {
	return historyRanges[fl.Field().String()]
}
