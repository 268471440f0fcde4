package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, order *domain.Order) (*domain.Order, error) {
	// Customers submit for themselves; staff may submit on behalf of a
	// customer by filling UserID.
	if !actor.Role.Staff() || order.UserID == 0 {
		order.UserID = actor.UserID
	}

	if strings.TrimSpace(order.Title) == "" && strings.TrimSpace(order.ProductLink) == "" {
		return nil, domain.ErrBadRequest
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}

	order.Status = domain.StatusPending
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	entry := &domain.StatusHistory{
		UserID:    actor.UserID,
		Status:    domain.StatusPending,
		Notes:     "order created",
		CreatedAt: order.CreatedAt,
	}

	newOrder, err := s.repo.CreateOrderWithHistory(ctx, order, entry)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, id uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrderWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if !actor.Role.Staff() && order.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	return order, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Order, int, error) {
	list, total, err := s.repo.ListOrdersByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("List orders for user", zap.Error(err))
		return nil, 0, domain.ErrInternal
	}
	return list, total, nil
}

func (s *Service) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, domain.ErrInvalidStatus
	}
	list, total, err := s.repo.ListOrders(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, 0, domain.ErrInternal
	}
	return list, total, nil
}

func (s *Service) OrderStatusCounts(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	counts, err := s.repo.CountOrdersByStatus(ctx)
	if err != nil {
		s.logger.Error("Count orders by status", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return counts, nil
}

// UpdateOrder applies a partial update, appends exactly one history entry in
// the same transaction and, for the statuses customers are told about,
// enqueues a WhatsApp job. Enqueue failures never fail the update.
func (s *Service) UpdateOrder(ctx context.Context, id uint64, actor domain.Actor, patch *domain.OrderPatch) (*domain.Order, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	order, err := s.repo.ReadOrder(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if !actor.Role.Staff() {
		if order.UserID != actor.UserID {
			return nil, domain.ErrForbidden
		}
		if patch.Status != nil && patch.Status.StaffOnly() {
			return nil, domain.ErrForbidden
		}
	}

	applyPatch(order, patch)

	if order.Status == domain.StatusPurchased && strings.TrimSpace(order.OrderNumber) == "" {
		return nil, domain.ErrOrderNumberRequired
	}

	// Updates without a status in the payload are logged under PENDING,
	// matching the audit rows the mobile clients already rely on.
	entryStatus := domain.StatusPending
	if patch.Status != nil {
		entryStatus = *patch.Status
	}
	entry := &domain.StatusHistory{
		OrderID:   order.ID,
		UserID:    actor.UserID,
		Status:    entryStatus,
		Notes:     changeSummary(patch),
		CreatedAt: time.Now(),
	}
	order.UpdatedAt = entry.CreatedAt

	if _, err := s.repo.UpdateOrderWithHistory(ctx, order, entry); err != nil {
		s.logger.Error("Update order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if patch.Status != nil && patch.Status.NotifiesCustomer() {
		s.notifier.ScheduleStatusNotification(order.ID)
	}

	updated, err := s.repo.ReadOrderWithOwner(ctx, id)
	if err != nil {
		s.logger.Error("Re-read order after update", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return updated, nil
}

func (s *Service) OrderHistory(ctx context.Context, actor domain.Actor, orderID uint64) ([]*domain.StatusHistory, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if !actor.Role.Staff() && order.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	list, err := s.repo.ListHistoryByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("List order history", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func applyPatch(order *domain.Order, patch *domain.OrderPatch) {
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Price != nil {
		order.Price = *patch.Price
	}
	if patch.ShippingPrice != nil {
		order.ShippingPrice = *patch.ShippingPrice
	}
	if patch.LocalShippingPrice != nil {
		order.LocalShippingPrice = *patch.LocalShippingPrice
	}
	if patch.OrderNumber != nil {
		order.OrderNumber = strings.TrimSpace(*patch.OrderNumber)
	}
	if patch.Prepaid != nil {
		order.Prepaid = *patch.Prepaid
	}
	if patch.Quantity != nil {
		order.Quantity = *patch.Quantity
	}
	if patch.Title != nil {
		order.Title = *patch.Title
	}
	if patch.Size != nil {
		order.Size = *patch.Size
	}
	if patch.Color != nil {
		order.Color = *patch.Color
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if patch.ProductLink != nil {
		order.ProductLink = *patch.ProductLink
	}
	if patch.ImageURL != nil {
		order.ImageURL = *patch.ImageURL
	}
}

// changeSummary builds the human-readable history note for an update.
func changeSummary(patch *domain.OrderPatch) string {
	var parts []string
	if patch.Status != nil {
		parts = append(parts, fmt.Sprintf("status set to %s", *patch.Status))
	}
	if patch.OrderNumber != nil && strings.TrimSpace(*patch.OrderNumber) != "" {
		parts = append(parts, fmt.Sprintf("order number assigned: %s", strings.TrimSpace(*patch.OrderNumber)))
	}
	if patch.Prepaid != nil {
		if *patch.Prepaid {
			parts = append(parts, "marked prepaid")
		} else {
			parts = append(parts, "prepaid flag cleared")
		}
	}
	if len(parts) == 0 {
		return "order details updated"
	}
	return strings.Join(parts, "; ")
}
