package http

import (
	"strconv"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	Title       string   `json:"title"`
	Size        string   `json:"size"`
	Color       string   `json:"color"`
	Quantity    int32    `json:"quantity"`
	ProductLink string   `json:"productLink"`
	ImageURL    string   `json:"imageUrl"`
	Notes       string   `json:"notes"`
	Price       *float64 `json:"price"`
	UserID      uint64   `json:"userId"`
}

type orderResponse struct {
	ID                 uint64          `json:"id"`
	UserID             uint64          `json:"userId"`
	Title              string          `json:"title"`
	Size               string          `json:"size"`
	Color              string          `json:"color"`
	Quantity           int32           `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	ShippingPrice      decimal.Decimal `json:"shippingPrice"`
	LocalShippingPrice decimal.Decimal `json:"localShippingPrice"`
	Status             string          `json:"status"`
	OrderNumber        string          `json:"orderNumber,omitempty"`
	Prepaid            bool            `json:"prepaid"`
	ProductLink        string          `json:"productLink,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	CustomerName       string          `json:"customerName,omitempty"`
	CustomerPhone      string          `json:"customerPhone,omitempty"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	r := orderResponse{
		ID:                 o.ID,
		UserID:             o.UserID,
		Title:              o.Title,
		Size:               o.Size,
		Color:              o.Color,
		Quantity:           o.Quantity,
		Price:              o.Price,
		ShippingPrice:      o.ShippingPrice,
		LocalShippingPrice: o.LocalShippingPrice,
		Status:             string(o.Status),
		OrderNumber:        o.OrderNumber,
		Prepaid:            o.Prepaid,
		ProductLink:        o.ProductLink,
		ImageURL:           o.ImageURL,
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Owner != nil {
		r.CustomerName = o.Owner.Name
		r.CustomerPhone = o.Owner.Phone
	}
	return r
}

type listOrdersResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int             `json:"total"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order := &domain.Order{
		UserID:      req.UserID,
		Title:       req.Title,
		Size:        req.Size,
		Color:       req.Color,
		Quantity:    req.Quantity,
		ProductLink: req.ProductLink,
		ImageURL:    req.ImageURL,
		Notes:       req.Notes,
	}

	if req.Price != nil {
		price, err := decimal.NewFromFloat64(*req.Price)
		if err != nil {
			oh.handleError(ctx, domain.ErrInvalidAmount)
			return
		}
		order.Price = price
	}

	created, err := oh.service.CreateOrder(ctx, getAuthPayload(ctx).Actor(), order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(created), 201)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id, err := orderID(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, getAuthPayload(ctx).Actor(), id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

// ListOwnOrders serves the customer's order list.
func (oh *OrderHandler) ListOwnOrders(ctx *gin.Context) {
	limit, offset := paginationParams(ctx)

	list, total, err := oh.service.ListOrdersByUser(ctx, getAuthPayload(ctx).UserID, limit, offset)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, buildOrderList(list, total))
}

// ListAllOrders serves the staff order browser with an optional status filter.
func (oh *OrderHandler) ListAllOrders(ctx *gin.Context) {
	limit, offset := paginationParams(ctx)

	var status *domain.OrderStatus
	if s := ctx.Query("status"); s != "" {
		st := domain.OrderStatus(s)
		status = &st
	}

	list, total, err := oh.service.ListOrders(ctx, status, limit, offset)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, buildOrderList(list, total))
}

func (oh *OrderHandler) OrderStats(ctx *gin.Context) {
	counts, err := oh.service.OrderStatusCounts(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, counts)
}

type updateOrderRequest struct {
	Status             *string  `json:"status"`
	Price              *float64 `json:"price"`
	ShippingPrice      *float64 `json:"shippingPrice"`
	LocalShippingPrice *float64 `json:"localShippingPrice"`
	OrderNumber        *string  `json:"orderNumber"`
	Prepaid            *bool    `json:"prepaid"`
	Quantity           *int32   `json:"quantity"`
	Title              *string  `json:"title"`
	Size               *string  `json:"size"`
	Color              *string  `json:"color"`
	Notes              *string  `json:"notes"`
	ProductLink        *string  `json:"productLink"`
	ImageURL           *string  `json:"imageUrl"`
}

func (r *updateOrderRequest) toPatch() (*domain.OrderPatch, error) {
	patch := &domain.OrderPatch{
		OrderNumber: r.OrderNumber,
		Prepaid:     r.Prepaid,
		Quantity:    r.Quantity,
		Title:       r.Title,
		Size:        r.Size,
		Color:       r.Color,
		Notes:       r.Notes,
		ProductLink: r.ProductLink,
		ImageURL:    r.ImageURL,
	}

	if r.Status != nil {
		status := domain.OrderStatus(*r.Status)
		patch.Status = &status
	}

	for _, f := range []struct {
		in  *float64
		out **decimal.Decimal
	}{
		{r.Price, &patch.Price},
		{r.ShippingPrice, &patch.ShippingPrice},
		{r.LocalShippingPrice, &patch.LocalShippingPrice},
	} {
		if f.in == nil {
			continue
		}
		d, err := decimal.NewFromFloat64(*f.in)
		if err != nil || d.Cmp(decimal.Zero) < 0 {
			return nil, domain.ErrInvalidAmount
		}
		*f.out = &d
	}

	return patch, nil
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	id, err := orderID(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	req := updateOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.UpdateOrder(ctx, id, getAuthPayload(ctx).Actor(), patch)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}

type historyResponse struct {
	ID        uint64    `json:"id"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	UserID    uint64    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

func (oh *OrderHandler) OrderHistory(ctx *gin.Context) {
	id, err := orderID(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	list, err := oh.service.OrderHistory(ctx, getAuthPayload(ctx).Actor(), id)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]historyResponse, 0, len(list))
	for _, entry := range list {
		result = append(result, historyResponse{
			ID:        entry.ID,
			Status:    string(entry.Status),
			Notes:     entry.Notes,
			UserID:    entry.UserID,
			UserName:  entry.UserName,
			CreatedAt: entry.CreatedAt,
		})
	}

	oh.handleSuccess(ctx, result)
}

func buildOrderList(list []*domain.Order, total int) listOrdersResponse {
	result := listOrdersResponse{
		Orders: make([]orderResponse, 0, len(list)),
		Total:  total,
	}
	for _, o := range list {
		result.Orders = append(result.Orders, newOrderResponse(o))
	}
	return result
}

func orderID(ctx *gin.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}

func paginationParams(ctx *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return limit, (page - 1) * limit
}
