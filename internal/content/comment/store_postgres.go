// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhduc/vidora/internal/platform/dberr"
	"github.com/leminhduc/vidora/pkg/pagination"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const commentColumns = `id, videoid, ownerid, content, createdat, updatedat`

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (id, videoid, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM content.comment WHERE id = $1`

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return comment, nil
}

func (repository *PostgresRepository) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int64, error) {
	var total int64
	if err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM content.comment WHERE videoid = $1`, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := `SELECT ` + commentColumns + ` FROM content.comment
		WHERE videoid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, videoID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `UPDATE content.comment SET content = $2, updatedat = $3 WHERE id = $1`

	comment.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	_, err := repository.pool.Exec(context, `DELETE FROM content.comment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}
	return nil
}
