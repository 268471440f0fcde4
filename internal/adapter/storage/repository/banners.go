package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) CreateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error) {
	statement := r.db.QueryBuilder.
		Insert("banners").
		Columns("title", "image_url", "image_public_id", "link", "active").
		Values(banner.Title, banner.ImageURL, banner.ImagePublicID, banner.Link, banner.Active).
		Suffix("RETURNING id, created_at, updated_at")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&banner.ID, &banner.CreatedAt, &banner.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return banner, nil
}

func (r *Repository) UpdateBanner(ctx context.Context, banner *domain.Banner) (*domain.Banner, error) {
	banner.UpdatedAt = time.Now()

	statement := r.db.QueryBuilder.
		Update("banners").
		Set("title", banner.Title).
		Set("image_url", banner.ImageURL).
		Set("image_public_id", banner.ImagePublicID).
		Set("link", banner.Link).
		Set("active", banner.Active).
		Set("updated_at", banner.UpdatedAt).
		Where(sq.Eq{"id": banner.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return banner, nil
}

func (r *Repository) DeleteBanner(ctx context.Context, id uint64) error {
	statement := r.db.QueryBuilder.
		Delete("banners").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}

	return nil
}

func (r *Repository) GetBanner(ctx context.Context, id uint64) (*domain.Banner, error) {
	statement := r.db.QueryBuilder.
		Select("id", "title", "image_url", "image_public_id", "link", "active", "created_at", "updated_at").
		From("banners").
		Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	banner := domain.Banner{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&banner.ID,
		&banner.Title,
		&banner.ImageURL,
		&banner.ImagePublicID,
		&banner.Link,
		&banner.Active,
		&banner.CreatedAt,
		&banner.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &banner, nil
}

func (r *Repository) ListBanners(ctx context.Context, activeOnly bool) ([]*domain.Banner, error) {
	statement := r.db.QueryBuilder.
		Select("id", "title", "image_url", "image_public_id", "link", "active", "created_at", "updated_at").
		From("banners").
		OrderBy("created_at DESC")
	if activeOnly {
		statement = statement.Where(sq.Eq{"active": true})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Banner, 0)
	for rows.Next() {
		banner := domain.Banner{}
		err := rows.Scan(
			&banner.ID,
			&banner.Title,
			&banner.ImageURL,
			&banner.ImagePublicID,
			&banner.Link,
			&banner.Active,
			&banner.CreatedAt,
			&banner.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &banner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
