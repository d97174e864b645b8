// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

/*
Package engagement implements the social relationship layer of the platform.

Likes and subscriptions are the same thing underneath: a directed edge from
an actor to a target, distinguished by kind. One table, one unique key, one
toggle algorithm — the per-kind endpoints are thin veneers over it.

# Concurrency

The (actor, target, kind) unique constraint is the arbiter. Two concurrent
toggles that both observe "absent" both attempt an insert; exactly one row
survives, and the loser's unique violation is folded into the same outcome
the winner saw. No locks, no transactions.
*/
package engagement

import "time"

// # Edge Kinds

// Kind discriminates the relationship an edge represents.
type Kind string

const (
	KindVideoLike    Kind = "video_like"
	KindCommentLike  Kind = "comment_like"
	KindTweetLike    Kind = "tweet_like"
	KindSubscription Kind = "subscription"
)

// # Domain Entities

// Edge is a directed social relationship from an actor to a target.
//
// The target id is opaque at this layer: a video, comment, tweet, or channel
// id depending on the kind. Edges may outlive their targets; a dangling edge
// is harmless and is never followed blindly.
type Edge struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelProfile is the public slice of a user shown in subscriber and
// subscription listings.
type ChannelProfile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// ChannelStats aggregates the dashboard numbers for a channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

// # Field Identifiers

const (
	FieldVideoID   = "video_id"
	FieldCommentID = "comment_id"
	FieldTweetID   = "tweet_id"
	FieldChannelID = "channel_id"
	FieldUserID    = "user_id"
)
