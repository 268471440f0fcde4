package port

import (
	"context"

	"github.com/govalues/decimal"
)

//go:generate mockgen -source=cache.go -destination=mock/cache.go -package=mock

// RateCache fronts the exchange_rates table. A miss is (zero, false, nil);
// cache failures are soft, callers fall back to the repository.
type RateCache interface {
	GetRate(ctx context.Context, code string) (decimal.Decimal, bool, error)
	SetRate(ctx context.Context, code string, rate decimal.Decimal) error
	DeleteRate(ctx context.Context, code string) error
}
