package port

import (
	"context"
	"io"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/govalues/decimal"
)

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, phone string, password string) (string, error)
	GetUser(ctx context.Context, id uint64) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int, error)

	CreateOrder(ctx context.Context, actor domain.Actor, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, id uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Order, int, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, int, error)
	OrderStatusCounts(ctx context.Context) (map[domain.OrderStatus]int64, error)
	UpdateOrder(ctx context.Context, id uint64, actor domain.Actor, patch *domain.OrderPatch) (*domain.Order, error)
	OrderHistory(ctx context.Context, actor domain.Actor, orderID uint64) ([]*domain.StatusHistory, error)

	ListBanners(ctx context.Context, activeOnly bool) ([]*domain.Banner, error)
	CreateBanner(ctx context.Context, banner *domain.Banner, image io.Reader) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, banner *domain.Banner, image io.Reader) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id uint64) error

	UpsertRate(ctx context.Context, code string, rate decimal.Decimal) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*domain.ExchangeRate, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)

	CreateInvoice(ctx context.Context, userID uint64, orderIDs []uint64) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, actor domain.Actor, id uint64) (*domain.Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID uint64) ([]*domain.Invoice, error)
}
