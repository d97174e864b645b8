// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package engagement

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leminhduc/vidora/internal/platform/middleware"
	requestutil "github.com/leminhduc/vidora/internal/platform/request"
	"github.com/leminhduc/vidora/internal/platform/respond"
	"github.com/leminhduc/vidora/internal/platform/validate"
	"github.com/leminhduc/vidora/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the social engagement HTTP endpoints.
type Handler struct {
	engagementService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{engagementService: service}
}

// Routes returns a [chi.Router] configured with like and subscription routes.
//
// # Endpoints
//   - POST /likes/videos/{videoID}/toggle         : Flip a video like.
//   - POST /likes/comments/{commentID}/toggle     : Flip a comment like.
//   - POST /likes/tweets/{tweetID}/toggle         : Flip a tweet like.
//   - GET  /likes/videos                          : Liked video ids.
//   - POST /channels/{channelID}/subscribe        : Flip a subscription.
//   - GET  /channels/{channelID}/subscribers      : Subscriber profiles.
//   - GET  /channels/{channelID}/stats            : Dashboard counts.
//   - GET  /users/{userID}/subscriptions          : Subscribed channels.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public read endpoints
	router.Get("/channels/{channelID}/subscribers", handler.channelSubscribers)
	router.Get("/channels/{channelID}/stats", handler.channelStats)
	router.Get("/users/{userID}/subscriptions", handler.subscribedChannels)

	// Protected write + personal read endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/likes/videos/{videoID}/toggle", handler.toggleVideoLike)
		r.Post("/likes/comments/{commentID}/toggle", handler.toggleCommentLike)
		r.Post("/likes/tweets/{tweetID}/toggle", handler.toggleTweetLike)
		r.Get("/likes/videos", handler.likedVideos)
		r.Post("/channels/{channelID}/subscribe", handler.toggleSubscription)
	})

	return router
}

/*
ToggleVideoLike flips the authenticated user's like on a video.

POST /api/v1/likes/videos/{videoID}/toggle

Description: Validates the id format only; the video itself is not looked
up, so liking an already-deleted video leaves a harmless dangling edge.

Response:
  - 200: {liked}: Final like state
  - 400: ErrInvalidJSON: Malformed id
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) toggleVideoLike(writer http.ResponseWriter, request *http.Request) {
	handler.toggleLike(writer, request, FieldVideoID, "videoID", "liked", (*Service).ToggleVideoLike)
}

/*
ToggleCommentLike flips the authenticated user's like on a comment.

POST /api/v1/likes/comments/{commentID}/toggle

Response:
  - 200: {liked}: Final like state
  - 400: ErrInvalidJSON: Malformed id
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) toggleCommentLike(writer http.ResponseWriter, request *http.Request) {
	handler.toggleLike(writer, request, FieldCommentID, "commentID", "liked", (*Service).ToggleCommentLike)
}

/*
ToggleTweetLike flips the authenticated user's like on a tweet.

POST /api/v1/likes/tweets/{tweetID}/toggle

Response:
  - 200: {liked}: Final like state
  - 400: ErrInvalidJSON: Malformed id
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) toggleTweetLike(writer http.ResponseWriter, request *http.Request) {
	handler.toggleLike(writer, request, FieldTweetID, "tweetID", "liked", (*Service).ToggleTweetLike)
}

// toggleLike factors the shared shape of the three like endpoints: extract
// the authenticated user, validate the path id, flip, and report the state.
func (handler *Handler) toggleLike(
	writer http.ResponseWriter,
	request *http.Request,
	field, paramName, resultKey string,
	toggle func(*Service, context.Context, string, string) (bool, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, paramName)

	v := &validate.Validator{}
	v.Required(field, targetID).UUID(field, targetID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := toggle(handler.engagementService, request.Context(), userID, targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{resultKey: state})
}

/*
ToggleSubscription flips the authenticated user's subscription to a channel.

POST /api/v1/channels/{channelID}/subscribe

Response:
  - 200: {isSubscribed}: Final subscription state
  - 404: ErrNotFound: Channel does not exist
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) toggleSubscription(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, "channelID")

	v := &validate.Validator{}
	v.Required(FieldChannelID, channelID).UUID(FieldChannelID, channelID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscribed, err := handler.engagementService.ToggleSubscription(request.Context(), userID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"isSubscribed": subscribed})
}

/*
LikedVideos lists the ids of videos the authenticated user has liked.

GET /api/v1/likes/videos

Response:
  - 200: Paginated []string: Video ids, newest like first
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) likedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	videoIDs, total, err := handler.engagementService.LikedVideos(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videoIDs, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

/*
ChannelSubscribers lists the profiles subscribed to a channel.

GET /api/v1/channels/{channelID}/subscribers

Response:
  - 200: Paginated []ChannelProfile: Newest subscription first
  - 404: ErrNotFound: Channel does not exist
*/
func (handler *Handler) channelSubscribers(writer http.ResponseWriter, request *http.Request) {
	channelID := requestutil.Param(request, "channelID")

	v := &validate.Validator{}
	v.Required(FieldChannelID, channelID).UUID(FieldChannelID, channelID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	subscribers, total, err := handler.engagementService.ChannelSubscribers(request.Context(), channelID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, subscribers, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

/*
SubscribedChannels lists the channels a user subscribes to.

GET /api/v1/users/{userID}/subscriptions

Response:
  - 200: Paginated []ChannelProfile: Newest subscription first
  - 404: ErrNotFound: User does not exist
*/
func (handler *Handler) subscribedChannels(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	v := &validate.Validator{}
	v.Required(FieldUserID, userID).UUID(FieldUserID, userID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	channels, total, err := handler.engagementService.SubscribedChannels(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, channels, pagination.NewMeta(params.Page, params.Limit, int(total)))
}

/*
ChannelStats returns the dashboard numbers for a channel.

GET /api/v1/channels/{channelID}/stats

Response:
  - 200: ChannelStats: Total videos and subscribers
  - 404: ErrNotFound: Channel does not exist
*/
func (handler *Handler) channelStats(writer http.ResponseWriter, request *http.Request) {
	channelID := requestutil.Param(request, "channelID")

	v := &validate.Validator{}
	v.Required(FieldChannelID, channelID).UUID(FieldChannelID, channelID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.engagementService.Stats(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
