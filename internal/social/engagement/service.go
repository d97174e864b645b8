// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package engagement

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/pkg/pagination"
	"github.com/leminhduc/vidora/pkg/uuid"
)

// # Service

// Service implements the relationship toggle engine and its read surface.
type Service struct {
	edgeRepository EdgeRepository
}

// NewService constructs a new engagement [Service] with its dependencies.
func NewService(edgeRepo EdgeRepository) *Service {
	return &Service{edgeRepository: edgeRepo}
}

// # Toggle Engine

/*
Toggle flips the edge (actorID, targetID, kind) and reports the final state.

Description: The single algorithm behind every like and subscribe endpoint.
If the edge exists it is removed (false); if absent it is created (true).

Concurrent duplicate creates are resolved by the unique constraint: the
loser's conflict is folded into true, because the edge it wanted now exists.
A delete that removes nothing is equally fine, a concurrent request got
there first and the edge is gone either way.

Parameters:
  - context: context.Context
  - actorID: string
  - targetID: string
  - kind: Kind

Returns:
  - bool: True if the edge now exists, false if it was removed
  - error: Storage failures
*/
func (service *Service) Toggle(context context.Context, actorID, targetID string, kind Kind) (bool, error) {
	exists, err := service.edgeRepository.Exists(context, actorID, targetID, kind)
	if err != nil {
		return false, fmt.Errorf("engagement_service_toggle_lookup_failed: %w", err)
	}

	if exists {
		if _, err := service.edgeRepository.Delete(context, actorID, targetID, kind); err != nil {
			return false, fmt.Errorf("engagement_service_toggle_delete_failed: %w", err)
		}
		return false, nil
	}

	edge := &Edge{
		ID:        uuid.New(),
		ActorID:   actorID,
		TargetID:  targetID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	if err := service.edgeRepository.Create(context, edge); err != nil {
		// Lost the duplicate-create race: the edge exists, which is the
		// outcome this caller asked for.
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return true, nil
		}
		return false, fmt.Errorf("engagement_service_toggle_create_failed: %w", err)
	}

	return true, nil
}

/*
ToggleVideoLike flips the like edge from a user to a video.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - bool: Whether the video is now liked
  - error: Storage failures
*/
func (service *Service) ToggleVideoLike(context context.Context, userID, videoID string) (bool, error) {
	return service.Toggle(context, userID, videoID, KindVideoLike)
}

/*
ToggleCommentLike flips the like edge from a user to a comment.

Parameters:
  - context: context.Context
  - userID: string
  - commentID: string

Returns:
  - bool: Whether the comment is now liked
  - error: Storage failures
*/
func (service *Service) ToggleCommentLike(context context.Context, userID, commentID string) (bool, error) {
	return service.Toggle(context, userID, commentID, KindCommentLike)
}

/*
ToggleTweetLike flips the like edge from a user to a tweet.

Parameters:
  - context: context.Context
  - userID: string
  - tweetID: string

Returns:
  - bool: Whether the tweet is now liked
  - error: Storage failures
*/
func (service *Service) ToggleTweetLike(context context.Context, userID, tweetID string) (bool, error) {
	return service.Toggle(context, userID, tweetID, KindTweetLike)
}

/*
ToggleSubscription flips the subscription edge from a user to a channel.

Description: Unlike the like toggles, subscriptions verify the channel
exists first, a subscription to a nonexistent channel is a 404, not a
dangling edge.

Parameters:
  - context: context.Context
  - userID: string
  - channelID: string

Returns:
  - bool: Whether the user is now subscribed
  - error: apperr.NotFound or storage failures
*/
func (service *Service) ToggleSubscription(context context.Context, userID, channelID string) (bool, error) {
	exists, err := service.edgeRepository.ChannelExists(context, channelID)
	if err != nil {
		return false, fmt.Errorf("engagement_service_channel_lookup_failed: %w", err)
	}
	if !exists {
		return false, apperr.NotFound("Channel")
	}

	return service.Toggle(context, userID, channelID, KindSubscription)
}

// # Read Surface

/*
LikedVideos returns the video ids the user has liked, newest-first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []string: Video ids
  - int64: Total liked videos
  - error: Storage failures
*/
func (service *Service) LikedVideos(context context.Context, userID string, params pagination.Params) ([]string, int64, error) {
	return service.edgeRepository.ListLikedVideoIDs(context, userID, params)
}

/*
ChannelSubscribers returns the profiles subscribed to a channel.

Parameters:
  - context: context.Context
  - channelID: string
  - params: pagination.Params

Returns:
  - []ChannelProfile: Subscriber profiles, newest-first
  - int64: Total subscribers
  - error: apperr.NotFound or storage failures
*/
func (service *Service) ChannelSubscribers(context context.Context, channelID string, params pagination.Params) ([]ChannelProfile, int64, error) {
	exists, err := service.edgeRepository.ChannelExists(context, channelID)
	if err != nil {
		return nil, 0, fmt.Errorf("engagement_service_channel_lookup_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("Channel")
	}

	return service.edgeRepository.ListSubscribers(context, channelID, params)
}

/*
SubscribedChannels returns the channels a user subscribes to.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []ChannelProfile: Channel profiles, newest-first
  - int64: Total subscriptions
  - error: apperr.NotFound or storage failures
*/
func (service *Service) SubscribedChannels(context context.Context, userID string, params pagination.Params) ([]ChannelProfile, int64, error) {
	exists, err := service.edgeRepository.ChannelExists(context, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("engagement_service_user_lookup_failed: %w", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("User")
	}

	return service.edgeRepository.ListSubscriptions(context, userID, params)
}

/*
Stats aggregates the dashboard numbers for a channel.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *ChannelStats: Total videos and subscribers
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Stats(context context.Context, channelID string) (*ChannelStats, error) {
	exists, err := service.edgeRepository.ChannelExists(context, channelID)
	if err != nil {
		return nil, fmt.Errorf("engagement_service_channel_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Channel")
	}

	return service.edgeRepository.ChannelStats(context, channelID)
}
