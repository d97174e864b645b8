// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/pkg/pagination"
	"github.com/leminhduc/vidora/pkg/uuid"
)

// VideoFinder checks video existence without importing the video package.
// The video repository satisfies it structurally.
type VideoFinder interface {
	Exists(context context.Context, videoID string) (bool, error)
}

type Service struct {
	repo   Repository
	videos VideoFinder
}

func NewService(repo Repository, videos VideoFinder) *Service {
	return &Service{repo: repo, videos: videos}
}

// Add attaches a comment to an existing video.
func (service *Service) Add(context context.Context, userID, videoID, content string) (*Comment, error) {
	exists, err := service.videos.Exists(context, videoID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_video_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Video")
	}

	comment := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: userID,
		Content: content,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_add_failed: %w", err)
	}
	return comment, nil
}

func (service *Service) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int64, error) {
	return service.repo.ListByVideo(context, videoID, params)
}

func (service *Service) Update(context context.Context, userID, commentID, content string) (*Comment, error) {
	comment, err := service.requireOwned(context, userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.repo.Update(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}
	return comment, nil
}

func (service *Service) Delete(context context.Context, userID, commentID string) error {
	if _, err := service.requireOwned(context, userID, commentID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, commentID); err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}
	return nil
}

func (service *Service) requireOwned(context context.Context, userID, commentID string) (*Comment, error) {
	comment, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, apperr.Forbidden("You do not own this comment")
	}
	return comment, nil
}
