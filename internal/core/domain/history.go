package domain

import "time"

// StatusHistory is an append-only audit row. One row is written on order
// creation and on every update; rows are never changed or deleted.
type StatusHistory struct {
	ID        uint64
	OrderID   uint64
	UserID    uint64
	Status    OrderStatus
	Notes     string
	CreatedAt time.Time

	// UserName is filled on reads, joined from the acting user.
	UserName string
}
