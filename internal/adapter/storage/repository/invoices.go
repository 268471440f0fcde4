package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		invoiceSt := r.db.QueryBuilder.
			Insert("invoices").
			Columns("number", "user_id", "total").
			Values(invoice.Number, invoice.UserID, invoice.Total).
			Suffix("RETURNING id, created_at")

		sql, args, err := invoiceSt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&invoice.ID, &invoice.CreatedAt)
		if err != nil {
			return err
		}

		linkSt := r.db.QueryBuilder.
			Insert("invoice_orders").
			Columns("invoice_id", "order_id")
		for _, orderID := range invoice.OrderIDs {
			linkSt = linkSt.Values(invoice.ID, orderID)
		}

		sql, args, err = linkSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return invoice, nil
}

func (r *Repository) GetInvoice(ctx context.Context, id uint64) (*domain.Invoice, error) {
	statement := r.db.QueryBuilder.
		Select("id", "number", "user_id", "total", "created_at").
		From("invoices").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	invoice := domain.Invoice{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&invoice.ID,
		&invoice.Number,
		&invoice.UserID,
		&invoice.Total,
		&invoice.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	orderIDs, err := r.invoiceOrderIDs(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.OrderIDs = orderIDs

	return &invoice, nil
}

func (r *Repository) ListInvoicesByUser(ctx context.Context, userID uint64) ([]*domain.Invoice, error) {
	statement := r.db.QueryBuilder.
		Select("id", "number", "user_id", "total", "created_at").
		From("invoices").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Invoice, 0)
	for rows.Next() {
		invoice := domain.Invoice{}
		err := rows.Scan(
			&invoice.ID,
			&invoice.Number,
			&invoice.UserID,
			&invoice.Total,
			&invoice.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, invoice := range list {
		orderIDs, err := r.invoiceOrderIDs(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.OrderIDs = orderIDs
	}

	return list, nil
}

func (r *Repository) invoiceOrderIDs(ctx context.Context, invoiceID uint64) ([]uint64, error) {
	statement := r.db.QueryBuilder.
		Select("order_id").
		From("invoice_orders").
		Where(sq.Eq{"invoice_id": invoiceID}).
		OrderBy("order_id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
