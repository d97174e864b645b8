package tweet

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

const tweetColumns = `id, ownerid, content, createdat, updatedat`

func scanTweet(row pgx.Row) (*Tweet, error) {
	tweet := &Tweet{}
	err := row.Scan(&tweet.ID, &tweet.OwnerID, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tweet, nil
}

func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	const query = `
		INSERT INTO content.tweet (id, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	_, err := repository.pool.Exec(context, query, tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_create_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tweet, error) {
	query := `SELECT ` + tweetColumns + ` FROM content.tweet WHERE id = $1`

	tweet, err := scanTweet(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	return tweet, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int64, error) {
	var total int64
	if err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM content.tweet WHERE ownerid = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_tweet_repo_count_failed: %w", err)
	}

	query := `SELECT ` + tweetColumns + ` FROM content.tweet
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_tweet_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tweets := []*Tweet{}
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_tweet_repo_scan_failed: %w", err)
		}
		tweets = append(tweets, tweet)
	}

	return tweets, total, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, tweet *Tweet) error {
	const query = `UPDATE content.tweet SET content = $2, updatedat = $3 WHERE id = $1`

	tweet.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, tweet.ID, tweet.Content, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_update_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	_, err := repository.pool.Exec(context, `DELETE FROM content.tweet WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_delete_failed: %w", err)
	}
	return nil
}
