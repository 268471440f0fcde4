package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	StatusPending              OrderStatus = "PENDING"
	StatusProcessing           OrderStatus = "PROCESSING"
	StatusConfirmed            OrderStatus = "CONFIRMED"
	StatusPurchased            OrderStatus = "PURCHASED"
	StatusShipped              OrderStatus = "SHIPPED"
	StatusReceivedInTurkey     OrderStatus = "RECEIVED_IN_TURKEY"
	StatusDeliveredToWarehouse OrderStatus = "DELIVERED_TO_WAREHOUSE"
	StatusDelivered            OrderStatus = "DELIVERED"
	StatusCancelled            OrderStatus = "CANCELLED"
	StatusReturned             OrderStatus = "RETURNED"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:              {},
	StatusProcessing:           {},
	StatusConfirmed:            {},
	StatusPurchased:            {},
	StatusShipped:              {},
	StatusReceivedInTurkey:     {},
	StatusDeliveredToWarehouse: {},
	StatusDelivered:            {},
	StatusCancelled:            {},
	StatusReturned:             {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// StaffOnly reports whether only ADMIN or WORKER may set this status.
func (s OrderStatus) StaffOnly() bool {
	switch s {
	case StatusPurchased, StatusReceivedInTurkey, StatusDeliveredToWarehouse:
		return true
	}
	return false
}

// NotifiesCustomer reports whether setting this status enqueues an
// outbound WhatsApp message.
func (s OrderStatus) NotifiesCustomer() bool {
	switch s {
	case StatusCancelled, StatusProcessing, StatusDeliveredToWarehouse:
		return true
	}
	return false
}

type Order struct {
	ID                 uint64
	UserID             uint64
	Title              string
	Size               string
	Color              string
	Quantity           int32
	Price              decimal.Decimal
	ShippingPrice      decimal.Decimal
	LocalShippingPrice decimal.Decimal
	Status             OrderStatus
	OrderNumber        string
	Prepaid            bool
	ProductLink        string
	ImageURL           string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Owner              *User
}

// OrderPatch carries a partial update. A nil field was not present in the
// request and leaves the stored value untouched.
type OrderPatch struct {
	Status             *OrderStatus
	Price              *decimal.Decimal
	ShippingPrice      *decimal.Decimal
	LocalShippingPrice *decimal.Decimal
	OrderNumber        *string
	Prepaid            *bool
	Quantity           *int32
	Title              *string
	Size               *string
	Color              *string
	Notes              *string
	ProductLink        *string
	ImageURL           *string
}
