package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Insert("users").
		Columns("phone", "name", "password", "role").
		Values(user.Phone, user.Name, user.Password, user.Role).
		Suffix("RETURNING id, created_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"phone": phone})
}

func (r *Repository) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.getUser(ctx, sq.Eq{"id": id})
}

func (r *Repository) getUser(ctx context.Context, where sq.Eq) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "phone", "name", "password", "role", "created_at").
		From("users").
		Where(where)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Phone,
		&user.Name,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repository) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int, error) {
	var total int
	countSQL, countArgs, err := r.db.QueryBuilder.
		Select("COUNT(*)").
		From("users").
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	statement := r.db.QueryBuilder.
		Select("id", "phone", "name", "password", "role", "created_at").
		From("users").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]*domain.User, 0)
	for rows.Next() {
		user := domain.User{}
		err := rows.Scan(
			&user.ID,
			&user.Phone,
			&user.Name,
			&user.Password,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
