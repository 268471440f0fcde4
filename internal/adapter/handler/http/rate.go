package http

import (
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type RateHandler struct {
	Handler
	service port.Service
}

func NewRateHandler(service port.Service, logger *zap.Logger) (*RateHandler, error) {
	return &RateHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type rateResponse struct {
	Code      string          `json:"code"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (rh *RateHandler) ListRates(ctx *gin.Context) {
	list, err := rh.service.ListRates(ctx)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	result := make([]rateResponse, 0, len(list))
	for _, r := range list {
		result = append(result, rateResponse{Code: r.Code, Rate: r.Rate, UpdatedAt: r.UpdatedAt})
	}

	rh.handleSuccess(ctx, result)
}

type convertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
}

func (rh *RateHandler) Convert(ctx *gin.Context) {
	amount, err := decimal.Parse(ctx.Query("amount"))
	if err != nil {
		rh.handleError(ctx, domain.ErrInvalidAmount)
		return
	}
	from := ctx.DefaultQuery("from", domain.BaseCurrency)
	to := ctx.DefaultQuery("to", domain.BaseCurrency)

	result, err := rh.service.Convert(ctx, amount, from, to)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, convertResponse{Amount: amount, From: from, To: to, Result: result})
}

type upsertRateRequest struct {
	Rate float64 `json:"rate" binding:"required"`
}

func (rh *RateHandler) UpsertRate(ctx *gin.Context) {
	req := upsertRateRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		rh.handleValidationError(ctx, err)
		return
	}

	rate, err := decimal.NewFromFloat64(req.Rate)
	if err != nil {
		rh.handleError(ctx, domain.ErrInvalidAmount)
		return
	}

	saved, err := rh.service.UpsertRate(ctx, ctx.Param("code"), rate)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, rateResponse{Code: saved.Code, Rate: saved.Rate, UpdatedAt: saved.UpdatedAt})
}
