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

type InvoiceHandler struct {
	Handler
	service port.Service
}

func NewInvoiceHandler(service port.Service, logger *zap.Logger) (*InvoiceHandler, error) {
	return &InvoiceHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type invoiceResponse struct {
	ID        uint64          `json:"id"`
	Number    string          `json:"number"`
	UserID    uint64          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	OrderIDs  []uint64        `json:"orderIds"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newInvoiceResponse(i *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        i.ID,
		Number:    i.Number,
		UserID:    i.UserID,
		Total:     i.Total,
		OrderIDs:  i.OrderIDs,
		CreatedAt: i.CreatedAt,
	}
}

type createInvoiceRequest struct {
	UserID   uint64   `json:"userId" binding:"required"`
	OrderIDs []uint64 `json:"orderIds" binding:"required"`
}

func (ih *InvoiceHandler) CreateInvoice(ctx *gin.Context) {
	req := createInvoiceRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	invoice, err := ih.service.CreateInvoice(ctx, req.UserID, req.OrderIDs)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccessWithStatus(ctx, newInvoiceResponse(invoice), 201)
}

func (ih *InvoiceHandler) GetInvoice(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ih.handleValidationError(ctx, err)
		return
	}

	invoice, err := ih.service.GetInvoice(ctx, getAuthPayload(ctx).Actor(), id)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	ih.handleSuccess(ctx, newInvoiceResponse(invoice))
}

// ListOwnInvoices serves the customer's invoices.
func (ih *InvoiceHandler) ListOwnInvoices(ctx *gin.Context) {
	list, err := ih.service.ListInvoicesByUser(ctx, getAuthPayload(ctx).UserID)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}

	result := make([]invoiceResponse, 0, len(list))
	for _, i := range list {
		result = append(result, newInvoiceResponse(i))
	}

	ih.handleSuccess(ctx, result)
}
