package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) UpsertRate(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRate, error) {
	statement := r.db.QueryBuilder.
		Insert("exchange_rates").
		Columns("code", "rate", "updated_at").
		Values(rate.Code, rate.Rate, rate.UpdatedAt).
		Suffix("ON CONFLICT (code) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	return rate, nil
}

func (r *Repository) GetRate(ctx context.Context, code string) (*domain.ExchangeRate, error) {
	statement := r.db.QueryBuilder.
		Select("code", "rate", "updated_at").
		From("exchange_rates").
		Where(sq.Eq{"code": code})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rate := domain.ExchangeRate{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rate.Code, &rate.Rate, &rate.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &rate, nil
}

func (r *Repository) ListRates(ctx context.Context) ([]*domain.ExchangeRate, error) {
	statement := r.db.QueryBuilder.
		Select("code", "rate", "updated_at").
		From("exchange_rates").
		OrderBy("code")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.ExchangeRate, 0)
	for rows.Next() {
		rate := domain.ExchangeRate{}
		if err := rows.Scan(&rate.Code, &rate.Rate, &rate.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &rate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
