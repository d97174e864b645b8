// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package engagement

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhduc/vidora/internal/platform/dberr"
	"github.com/leminhduc/vidora/pkg/pagination"
)

// # Edge Repository

// PostgresEdgeRepository implements the EdgeRepository interface using pgx.
//
// All edges live in one table, social.edge, with a unique constraint over
// (actorid, targetid, kind). That constraint is load-bearing: the toggle
// algorithm resolves concurrent duplicate inserts through it.
type PostgresEdgeRepository struct {
	pool *pgxpool.Pool
}

// NewEdgeRepository creates a new PostgreSQL implementation of the EdgeRepository.
func NewEdgeRepository(pool *pgxpool.Pool) *PostgresEdgeRepository {
	return &PostgresEdgeRepository{pool: pool}
}

/*
Exists reports whether the edge (actorID, targetID, kind) is present.

Parameters:
  - context: context.Context
  - actorID: string
  - targetID: string
  - kind: Kind

Returns:
  - bool: Presence of the edge
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) Exists(context context.Context, actorID, targetID string, kind Kind) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM social.edge
			WHERE actorid = $1 AND targetid = $2 AND kind = $3
		)`

	var exists bool
	err := repository.pool.QueryRow(context, query, actorID, targetID, string(kind)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres_edge_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
Create inserts a new edge row.

Description: A duplicate insert trips the (actorid, targetid, kind) unique
constraint; the error is passed through [dberr.Wrap] so the service can
classify it without touching pgx internals.

Parameters:
  - context: context.Context
  - edge: *Edge

Returns:
  - error: apperr.Conflict on duplicates, or execution errors
*/
func (repository *PostgresEdgeRepository) Create(context context.Context, edge *Edge) error {
	const query = `
		INSERT INTO social.edge (id, actorid, targetid, kind, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		edge.ID,
		edge.ActorID,
		edge.TargetID,
		string(edge.Kind),
		edge.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err)
	}

	return nil
}

/*
Delete removes the edge (actorID, targetID, kind).

Description: Unconditional delete keyed on the natural key. Zero affected
rows means the edge was already absent, reported as false with no error.

Parameters:
  - context: context.Context
  - actorID: string
  - targetID: string
  - kind: Kind

Returns:
  - bool: Whether a row was removed
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) Delete(context context.Context, actorID, targetID string, kind Kind) (bool, error) {
	const query = `
		DELETE FROM social.edge
		WHERE actorid = $1 AND targetid = $2 AND kind = $3`

	tag, err := repository.pool.Exec(context, query, actorID, targetID, string(kind))
	if err != nil {
		return false, fmt.Errorf("postgres_edge_repo_delete_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

/*
ListLikedVideoIDs returns the video ids the user has liked, newest-first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []string: Video ids
  - int64: Total liked videos
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) ListLikedVideoIDs(context context.Context, userID string, params pagination.Params) ([]string, int64, error) {
	const countQuery = `
		SELECT COUNT(*) FROM social.edge
		WHERE actorid = $1 AND kind = $2`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, userID, string(KindVideoLike)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_edge_repo_liked_count_failed: %w", err)
	}

	const query = `
		SELECT targetid FROM social.edge
		WHERE actorid = $1 AND kind = $2
		ORDER BY createdat DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, query, userID, string(KindVideoLike), params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_edge_repo_liked_list_failed: %w", err)
	}
	defer rows.Close()

	videoIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, 0, fmt.Errorf("postgres_edge_repo_liked_scan_failed: %w", err)
		}
		videoIDs = append(videoIDs, id)
	}

	return videoIDs, total, rows.Err()
}

/*
ListSubscribers returns the profiles subscribed to a channel, newest-first.

Description: Joins the account table so subscriber listings carry public
profile data, not bare ids. Edges whose actor account has been deleted
simply drop out of the join.

Parameters:
  - context: context.Context
  - channelID: string
  - params: pagination.Params

Returns:
  - []ChannelProfile: Subscriber profiles
  - int64: Total subscribers
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelProfile, int64, error) {
	const countQuery = `
		SELECT COUNT(*) FROM social.edge
		WHERE targetid = $1 AND kind = $2`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, channelID, string(KindSubscription)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_edge_repo_subscribers_count_failed: %w", err)
	}

	const query = `
		SELECT account.id, account.username, account.fullname, account.avatarurl, edge.createdat
		FROM social.edge AS edge
		JOIN users.account AS account ON account.id = edge.actorid
		WHERE edge.targetid = $1 AND edge.kind = $2
		ORDER BY edge.createdat DESC
		LIMIT $3 OFFSET $4`

	return repository.queryProfiles(context, query, channelID, params, total, "subscribers")
}

/*
ListSubscriptions returns the channels a user subscribes to, newest-first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []ChannelProfile: Channel profiles
  - int64: Total subscriptions
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) ListSubscriptions(context context.Context, userID string, params pagination.Params) ([]ChannelProfile, int64, error) {
	const countQuery = `
		SELECT COUNT(*) FROM social.edge
		WHERE actorid = $1 AND kind = $2`

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, userID, string(KindSubscription)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_edge_repo_subscriptions_count_failed: %w", err)
	}

	const query = `
		SELECT account.id, account.username, account.fullname, account.avatarurl, edge.createdat
		FROM social.edge AS edge
		JOIN users.account AS account ON account.id = edge.targetid
		WHERE edge.actorid = $1 AND edge.kind = $2
		ORDER BY edge.createdat DESC
		LIMIT $3 OFFSET $4`

	return repository.queryProfiles(context, query, userID, params, total, "subscriptions")
}

// queryProfiles runs a profile-join listing query and hydrates the rows.
func (repository *PostgresEdgeRepository) queryProfiles(context context.Context, query, anchorID string, params pagination.Params, total int64, label string) ([]ChannelProfile, int64, error) {
	rows, err := repository.pool.Query(context, query, anchorID, string(KindSubscription), params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_edge_repo_%s_list_failed: %w", label, err)
	}
	defer rows.Close()

	profiles := []ChannelProfile{}
	for rows.Next() {
		var profile ChannelProfile
		if err := rows.Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.SubscribedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_edge_repo_%s_scan_failed: %w", label, err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, rows.Err()
}

/*
ChannelExists reports whether the given channel (user account) exists.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - bool: Presence of the account
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) ChannelExists(context context.Context, channelID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, channelID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_edge_repo_channel_exists_failed: %w", err)
	}

	return exists, nil
}

/*
ChannelStats aggregates total videos and subscribers for a channel.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *ChannelStats: Aggregated counts
  - error: Execution errors
*/
func (repository *PostgresEdgeRepository) ChannelStats(context context.Context, channelID string) (*ChannelStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM content.video WHERE ownerid = $1),
			(SELECT COUNT(*) FROM social.edge WHERE targetid = $1 AND kind = $2)`

	stats := &ChannelStats{}
	err := repository.pool.QueryRow(context, query, channelID, string(KindSubscription)).
		Scan(&stats.TotalVideos, &stats.TotalSubscribers)
	if err != nil {
		return nil, fmt.Errorf("postgres_edge_repo_channel_stats_failed: %w", err)
	}

	return stats, nil
}
