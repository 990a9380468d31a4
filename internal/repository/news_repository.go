package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

type NewsRepository interface {
	// CreateOrUpdate upserts on (source, url); an existing item keeps its
	// original published_at when the feed re-serves it without one.
	CreateOrUpdate(ctx context.Context, item model.NewsItem) error
	GetByID(ctx context.Context, id int64) (model.NewsItem, error)
	List(ctx context.Context, limit int) ([]model.NewsItem, error)
	UpdateReadableContent(ctx context.Context, id int64, content string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type newsRepository struct {
	db dbtx
}

func NewNewsRepository(db dbtx) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) CreateOrUpdate(ctx context.Context, item model.NewsItem) error {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO news_items (id, source, title, url, summary, published_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source, url) DO UPDATE SET
		   title = excluded.title,
		   summary = excluded.summary,
		   published_at = COALESCE(news_items.published_at, excluded.published_at)`,
		id,
		item.Source,
		item.Title,
		item.URL,
		item.Summary,
		nullableTime(item.PublishedAt),
		now,
	)
	return err
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (model.NewsItem, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, source, title, url, summary, readable_content, published_at, created_at
		 FROM news_items WHERE id = ?`,
		id,
	)

	var n model.NewsItem
	var summary, readable, publishedAt sql.NullString
	var createdAt string
	if err := row.Scan(&n.ID, &n.Source, &n.Title, &n.URL, &summary, &readable, &publishedAt, &createdAt); err != nil {
		return model.NewsItem{}, err
	}
	if summary.Valid {
		n.Summary = &summary.String
	}
	if readable.Valid {
		n.ReadableContent = &readable.String
	}
	if publishedAt.Valid {
		n.PublishedAt = parseTimePtr(publishedAt.String)
	}
	n.CreatedAt, _ = parseTime(createdAt)
	return n, nil
}

func (r *newsRepository) List(ctx context.Context, limit int) ([]model.NewsItem, error) {
	query := `SELECT id, source, title, url, summary, readable_content, published_at, created_at
	          FROM news_items ORDER BY published_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		var n model.NewsItem
		var summary, readable, publishedAt sql.NullString
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Source, &n.Title, &n.URL, &summary, &readable, &publishedAt, &createdAt); err != nil {
			return nil, err
		}
		if summary.Valid {
			n.Summary = &summary.String
		}
		if readable.Valid {
			n.ReadableContent = &readable.String
		}
		if publishedAt.Valid {
			n.PublishedAt = parseTimePtr(publishedAt.String)
		}
		n.CreatedAt, _ = parseTime(createdAt)
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *newsRepository) UpdateReadableContent(ctx context.Context, id int64, content string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE news_items SET readable_content = ? WHERE id = ?`,
		content, id,
	)
	return err
}

func (r *newsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		`DELETE FROM news_items WHERE created_at < ?`,
		formatTime(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
