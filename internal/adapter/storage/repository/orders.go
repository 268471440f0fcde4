package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id", "user_id", "title", "size", "color", "quantity",
	"price", "shipping_price", "local_shipping_price",
	"status", "order_number", "prepaid",
	"product_link", "image_url", "notes",
	"created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Title,
		&order.Size,
		&order.Color,
		&order.Quantity,
		&order.Price,
		&order.ShippingPrice,
		&order.LocalShippingPrice,
		&order.Status,
		&order.OrderNumber,
		&order.Prepaid,
		&order.ProductLink,
		&order.ImageURL,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrderWithHistory inserts the order and its first history row in one
// transaction.
func (r *Repository) CreateOrderWithHistory(ctx context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns("user_id", "title", "size", "color", "quantity",
				"price", "shipping_price", "local_shipping_price",
				"status", "order_number", "prepaid",
				"product_link", "image_url", "notes").
			Values(order.UserID, order.Title, order.Size, order.Color, order.Quantity,
				order.Price, order.ShippingPrice, order.LocalShippingPrice,
				order.Status, order.OrderNumber, order.Prepaid,
				order.ProductLink, order.ImageURL, order.Notes).
			Suffix("RETURNING id, created_at, updated_at")

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		entry.OrderID = order.ID
		return insertHistory(ctx, tx, r, entry)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateOrderWithHistory writes the order fields and appends the history row
// in one transaction, so either both happen or neither does.
func (r *Repository) UpdateOrderWithHistory(ctx context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		updateSt := r.db.QueryBuilder.
			Update("orders").
			Set("title", order.Title).
			Set("size", order.Size).
			Set("color", order.Color).
			Set("quantity", order.Quantity).
			Set("price", order.Price).
			Set("shipping_price", order.ShippingPrice).
			Set("local_shipping_price", order.LocalShippingPrice).
			Set("status", order.Status).
			Set("order_number", order.OrderNumber).
			Set("prepaid", order.Prepaid).
			Set("product_link", order.ProductLink).
			Set("image_url", order.ImageURL).
			Set("notes", order.Notes).
			Set("updated_at", order.UpdatedAt).
			Where(sq.Eq{"id": order.ID})

		sql, args, err := updateSt.ToSql()
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDataNotFound
		}

		return insertHistory(ctx, tx, r, entry)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, r *Repository, entry *domain.StatusHistory) error {
	histSt := r.db.QueryBuilder.
		Insert("order_status_history").
		Columns("order_id", "user_id", "status", "notes", "created_at").
		Values(entry.OrderID, entry.UserID, entry.Status, entry.Notes, entry.CreatedAt).
		Suffix("RETURNING id")

	sql, args, err := histSt.ToSql()
	if err != nil {
		return err
	}

	return tx.QueryRow(ctx, sql, args...).Scan(&entry.ID)
}

func (r *Repository) ReadOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (r *Repository) ReadOrderWithOwner(ctx context.Context, id uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("o.id", "o.user_id", "o.title", "o.size", "o.color", "o.quantity",
			"o.price", "o.shipping_price", "o.local_shipping_price",
			"o.status", "o.order_number", "o.prepaid",
			"o.product_link", "o.image_url", "o.notes",
			"o.created_at", "o.updated_at",
			"u.name", "u.phone", "u.role").
		From("orders o").
		Join("users u ON u.id = o.user_id").
		Where(sq.Eq{"o.id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}
	owner := domain.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.Title,
		&order.Size,
		&order.Color,
		&order.Quantity,
		&order.Price,
		&order.ShippingPrice,
		&order.LocalShippingPrice,
		&order.Status,
		&order.OrderNumber,
		&order.Prepaid,
		&order.ProductLink,
		&order.ImageURL,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
		&owner.Name,
		&owner.Phone,
		&owner.Role,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	owner.ID = order.UserID
	order.Owner = &owner

	return &order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Order, int, error) {
	return r.listOrders(ctx, sq.Eq{"user_id": userID}, limit, offset)
}

func (r *Repository) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, int, error) {
	where := sq.Eq{}
	if status != nil {
		where["status"] = *status
	}
	return r.listOrders(ctx, where, limit, offset)
}

func (r *Repository) listOrders(ctx context.Context, where sq.Eq, limit, offset int) ([]*domain.Order, int, error) {
	countSt := r.db.QueryBuilder.
		Select("COUNT(*)").
		From("orders")
	if len(where) > 0 {
		countSt = countSt.Where(where)
	}

	countSQL, countArgs, err := countSt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if len(where) > 0 {
		statement = statement.Where(where)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repository) CountOrdersByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	statement := r.db.QueryBuilder.
		Select("status", "COUNT(*)").
		From("orders").
		GroupBy("status")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var status domain.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
