package tweet

import (
	"context"
	"fmt"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/pkg/pagination"
	"github.com/leminhduc/vidora/pkg/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) Create(context context.Context, ownerID, content string) (*Tweet, error) {
	tweet := &Tweet{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Content: content,
	}

	if err := service.repo.Create(context, tweet); err != nil {
		return nil, fmt.Errorf("tweet_service_create_failed: %w", err)
	}
	return tweet, nil
}

func (service *Service) ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int64, error) {
	return service.repo.ListByOwner(context, ownerID, params)
}

func (service *Service) Update(context context.Context, userID, tweetID, content string) (*Tweet, error) {
	tweet, err := service.requireOwned(context, userID, tweetID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := service.repo.Update(context, tweet); err != nil {
		return nil, fmt.Errorf("tweet_service_update_failed: %w", err)
	}
	return tweet, nil
}

func (service *Service) Delete(context context.Context, userID, tweetID string) error {
	if _, err := service.requireOwned(context, userID, tweetID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, tweetID); err != nil {
		return fmt.Errorf("tweet_service_delete_failed: %w", err)
	}
	return nil
}

func (service *Service) requireOwned(context context.Context, userID, tweetID string) (*Tweet, error) {
	tweet, err := service.repo.FindByID(context, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userID {
		return nil, apperr.Forbidden("You do not own this tweet")
	}
	return tweet, nil
}
