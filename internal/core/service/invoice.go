package service

import (
	"context"
	"errors"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// CreateInvoice totals a customer's orders (price + shipping + local
// shipping) into a new invoice with a generated number.
func (s *Service) CreateInvoice(ctx context.Context, userID uint64, orderIDs []uint64) (*domain.Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, domain.ErrEmptyInvoice
	}

	total := decimal.Zero
	for _, id := range orderIDs {
		order, err := s.repo.ReadOrder(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, err
			}
			s.logger.Error("Read order for invoice", zap.Uint64("order", id), zap.Error(err))
			return nil, domain.ErrInternal
		}
		if order.UserID != userID {
			return nil, domain.ErrOrderNotOwned
		}

		for _, amount := range []decimal.Decimal{order.Price, order.ShippingPrice, order.LocalShippingPrice} {
			total, err = total.Add(amount)
			if err != nil {
				s.logger.Error("Invoice total overflow", zap.Uint64("order", id), zap.Error(err))
				return nil, domain.ErrInternal
			}
		}
	}

	invoice, err := s.repo.CreateInvoice(ctx, &domain.Invoice{
		Number:   uuid.NewString(),
		UserID:   userID,
		Total:    total,
		OrderIDs: orderIDs,
	})
	if err != nil {
		s.logger.Error("Create invoice", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return invoice, nil
}

func (s *Service) GetInvoice(ctx context.Context, actor domain.Actor, id uint64) (*domain.Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Get invoice", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if !actor.Role.Staff() && invoice.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return invoice, nil
}

func (s *Service) ListInvoicesByUser(ctx context.Context, userID uint64) ([]*domain.Invoice, error) {
	list, err := s.repo.ListInvoicesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List invoices", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}
