package tweet

import (
	"context"

	"github.com/leminhduc/vidora/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, tweet *Tweet) error
	FindByID(context context.Context, id string) (*Tweet, error)
	ListByOwner(context context.Context, ownerID string, params pagination.Params) ([]*Tweet, int64, error)
	Update(context context.Context, tweet *Tweet) error
	Delete(context context.Context, id string) error
}
