// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhduc/vidora/internal/platform/dberr"
	"github.com/leminhduc/vidora/pkg/pagination"
)

// PostgresRepository implements the video Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const videoColumns = `id, ownerid, title, description, videourl, thumbnailurl, duration, ispublished, createdat, updatedat`

func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	const query = `
		INSERT INTO content.video (
			id, ownerid, title, description, videourl, thumbnailurl, duration, ispublished, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Video, error) {
	query := `SELECT ` + videoColumns + ` FROM content.video WHERE id = $1`

	video, err := scanVideo(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return video, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM content.video WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_video_repo_exists_failed: %w", err)
	}
	return exists, nil
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Video, int64, error) {
	where := `WHERE 1=1`
	args := []any{}

	if filter.PublishedOnly {
		where += ` AND ispublished = TRUE`
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where += fmt.Sprintf(` AND ownerid = $%d`, len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(` AND title ILIKE $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM content.video ` + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_count_failed: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	listQuery := fmt.Sprintf(
		`SELECT %s FROM content.video %s ORDER BY createdat DESC LIMIT $%d OFFSET $%d`,
		videoColumns, where, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_failed: %w", err)
	}
	defer rows.Close()

	videos := []*Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_video_repo_scan_failed: %w", err)
		}
		videos = append(videos, video)
	}

	return videos, total, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, video *Video) error {
	const query = `
		UPDATE content.video
		SET title = $2, description = $3, thumbnailurl = $4, updatedat = $5
		WHERE id = $1`

	video.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM content.video WHERE id = $1`

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_delete_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	const query = `UPDATE content.video SET ispublished = $2, updatedat = $3 WHERE id = $1`

	_, err := repository.pool.Exec(context, query, id, published, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_video_repo_set_published_failed: %w", err)
	}
	return nil
}
