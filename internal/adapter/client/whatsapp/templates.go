package whatsapp

import (
	"strconv"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
)

const templateLanguage = "en"

// Only these transitions message the customer. Statuses outside the map are
// internal bookkeeping.
var statusTemplates = map[domain.OrderStatus]string{
	domain.StatusProcessing:           "order_processing",
	domain.StatusCancelled:            "order_cancelled",
	domain.StatusDeliveredToWarehouse: "order_at_warehouse",
}

func templateParams(order *domain.Order) []string {
	name := ""
	if order.Owner != nil {
		name = order.Owner.Name
	}
	return []string{name, strconv.FormatUint(order.ID, 10), order.Title}
}
