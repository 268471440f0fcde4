package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Invoice struct {
	ID        uint64
	Number    string
	UserID    uint64
	Total     decimal.Decimal
	OrderIDs  []uint64
	CreatedAt time.Time
}
