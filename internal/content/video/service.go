// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/internal/platform/ctxutil"
	"github.com/leminhduc/vidora/pkg/pagination"
	"github.com/leminhduc/vidora/pkg/uuid"
)

// Service implements video metadata use cases.
type Service struct {
	repo    Repository
	counter ViewCounter
}

func NewService(repo Repository, counter ViewCounter) *Service {
	return &Service{repo: repo, counter: counter}
}

// CreateInput holds the metadata for a new video.
type CreateInput struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
}

func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Video, error) {
	video := &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		IsPublished:  true,
	}

	if err := service.repo.Create(context, video); err != nil {
		return nil, fmt.Errorf("video_service_create_failed: %w", err)
	}
	return video, nil
}

// Get returns a video by id and bumps its view counter.
//
// Counter failures are logged, not surfaced; a Redis outage must not take
// video playback down with it.
func (service *Service) Get(context context.Context, id string) (*Video, error) {
	video, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	views, err := service.counter.Increment(context, id)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "view_counter_unavailable",
			slog.String("video_id", id),
			slog.Any("cause", err),
		)
	} else {
		video.Views = views
	}

	return video, nil
}

// List returns published videos matching the filter, newest-first, with
// view counts attached in bulk.
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]*Video, int64, error) {
	filter.PublishedOnly = true

	videos, total, err := service.repo.List(context, filter, params)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(videos))
	for i, video := range videos {
		ids[i] = video.ID
	}

	views, err := service.counter.Get(context, ids...)
	if err == nil {
		for _, video := range videos {
			video.Views = views[video.ID]
		}
	}

	return videos, total, nil
}

// UpdateInput holds the mutable metadata fields.
type UpdateInput struct {
	Title        string
	Description  string
	ThumbnailURL string
}

func (service *Service) Update(context context.Context, userID, videoID string, input UpdateInput) (*Video, error) {
	video, err := service.requireOwned(context, userID, videoID)
	if err != nil {
		return nil, err
	}

	video.Title = input.Title
	video.Description = input.Description
	if input.ThumbnailURL != "" {
		video.ThumbnailURL = input.ThumbnailURL
	}

	if err := service.repo.Update(context, video); err != nil {
		return nil, fmt.Errorf("video_service_update_failed: %w", err)
	}
	return video, nil
}

func (service *Service) Delete(context context.Context, userID, videoID string) error {
	if _, err := service.requireOwned(context, userID, videoID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, videoID); err != nil {
		return fmt.Errorf("video_service_delete_failed: %w", err)
	}
	return nil
}

// TogglePublish flips the publication state and returns the new state.
func (service *Service) TogglePublish(context context.Context, userID, videoID string) (bool, error) {
	video, err := service.requireOwned(context, userID, videoID)
	if err != nil {
		return false, err
	}

	published := !video.IsPublished
	if err := service.repo.SetPublished(context, videoID, published); err != nil {
		return false, fmt.Errorf("video_service_toggle_publish_failed: %w", err)
	}
	return published, nil
}

// requireOwned loads a video and enforces that userID owns it.
func (service *Service) requireOwned(context context.Context, userID, videoID string) (*Video, error) {
	video, err := service.repo.FindByID(context, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userID {
		return nil, apperr.Forbidden("You do not own this video")
	}
	return video, nil
}
