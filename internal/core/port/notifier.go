package port

import (
	"context"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock

// Notifier accepts notification jobs for later delivery. Scheduling must
// return immediately and never perform network I/O.
type Notifier interface {
	ScheduleStatusNotification(orderID uint64)
}

// NotificationSource is what the queue consumer re-fetches an order from at
// send time, so the message reflects the latest state.
type NotificationSource interface {
	ReadOrderWithOwner(ctx context.Context, id uint64) (*domain.Order, error)
}
