package port

import (
	"context"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uint64) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int, error)

	// Order. Create and update both append their history entry inside the
	// same transaction as the order write.
	CreateOrderWithHistory(ctx context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error)
	UpdateOrderWithHistory(ctx context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error)
	ReadOrder(ctx context.Context, id uint64) (*domain.Order, error)
	ReadOrderWithOwner(ctx context.Context, id uint64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Order, int, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, int, error)
	CountOrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)

	// Status history
	ListHistoryByOrder(ctx context.Context, orderID uint64) ([]*domain.StatusHistory, error)

	// Banner
	CreateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id uint64) error
	GetBanner(ctx context.Context, id uint64) (*domain.Banner, error)
	ListBanners(ctx context.Context, activeOnly bool) ([]*domain.Banner, error)

	// Exchange rate
	UpsertRate(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRate, error)
	GetRate(ctx context.Context, code string) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*domain.ExchangeRate, error)

	// Invoice
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id uint64) (*domain.Invoice, error)
	ListInvoicesByUser(ctx context.Context, userID uint64) ([]*domain.Invoice, error)
}
