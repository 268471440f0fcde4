package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
)

// ListHistoryByOrder returns the audit trail newest-first with the acting
// user's display name joined in.
func (r *Repository) ListHistoryByOrder(ctx context.Context, orderID uint64) ([]*domain.StatusHistory, error) {
	statement := r.db.QueryBuilder.
		Select("h.id", "h.order_id", "h.user_id", "h.status", "h.notes", "h.created_at", "u.name").
		From("order_status_history h").
		Join("users u ON u.id = h.user_id").
		Where(sq.Eq{"h.order_id": orderID}).
		OrderBy("h.created_at DESC", "h.id DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.StatusHistory, 0)
	for rows.Next() {
		entry := domain.StatusHistory{}
		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.UserID,
			&entry.Status,
			&entry.Notes,
			&entry.CreatedAt,
			&entry.UserName,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
