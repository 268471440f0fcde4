package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// BaseCurrency is the unit all order amounts are stored in.
const BaseCurrency = "USD"

// ExchangeRate holds how many units of Code one USD buys.
type ExchangeRate struct {
	Code      string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
