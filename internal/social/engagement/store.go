// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package engagement

import (
	"context"

	"github.com/leminhduc/vidora/pkg/pagination"
)

// # Edge Data Access

// EdgeRepository defines the data access contract for social edges.
//
// Implementations must enforce a unique constraint over (actor, target,
// kind); [Service.Toggle] relies on the resulting duplicate-insert error to
// resolve concurrent toggles.
type EdgeRepository interface {

	/*
		Exists reports whether the edge (actorID, targetID, kind) is present.

		Parameters:
		  - context: context.Context
		  - actorID: string
		  - targetID: string
		  - kind: Kind

		Returns:
		  - bool: Presence of the edge
		  - error: Retrieval failures
	*/
	Exists(context context.Context, actorID, targetID string, kind Kind) (bool, error)

	/*
		Create inserts a new edge. A duplicate insert fails with a
		unique-violation error classified by the dberr package.

		Parameters:
		  - context: context.Context
		  - edge: *Edge

		Returns:
		  - error: Unique violation or persistence failures
	*/
	Create(context context.Context, edge *Edge) error

	/*
		Delete removes the edge (actorID, targetID, kind) if present.
		Deleting an absent edge is a no-op reported as false.

		Parameters:
		  - context: context.Context
		  - actorID: string
		  - targetID: string
		  - kind: Kind

		Returns:
		  - bool: Whether a row was actually removed
		  - error: Persistence failures
	*/
	Delete(context context.Context, actorID, targetID string, kind Kind) (bool, error)

	/*
		ListLikedVideoIDs returns the video ids the user has liked,
		newest-first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []string: Video ids
		  - int64: Total liked videos
		  - error: Retrieval failures
	*/
	ListLikedVideoIDs(context context.Context, userID string, params pagination.Params) ([]string, int64, error)

	/*
		ListSubscribers returns the profiles subscribed to a channel,
		newest-first.

		Parameters:
		  - context: context.Context
		  - channelID: string
		  - params: pagination.Params

		Returns:
		  - []ChannelProfile: Subscriber profiles
		  - int64: Total subscribers
		  - error: Retrieval failures
	*/
	ListSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelProfile, int64, error)

	/*
		ListSubscriptions returns the channels a user subscribes to,
		newest-first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []ChannelProfile: Channel profiles
		  - int64: Total subscriptions
		  - error: Retrieval failures
	*/
	ListSubscriptions(context context.Context, userID string, params pagination.Params) ([]ChannelProfile, int64, error)

	/*
		ChannelExists reports whether the given channel (user account) exists.

		Parameters:
		  - context: context.Context
		  - channelID: string

		Returns:
		  - bool: Presence of the account
		  - error: Retrieval failures
	*/
	ChannelExists(context context.Context, channelID string) (bool, error)

	/*
		ChannelStats aggregates total videos and subscribers for a channel.

		Parameters:
		  - context: context.Context
		  - channelID: string

		Returns:
		  - *ChannelStats: Aggregated counts
		  - error: Retrieval failures
	*/
	ChannelStats(context context.Context, channelID string) (*ChannelStats, error)
}
