// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package comment

import (
	"context"

	"github.com/leminhduc/vidora/pkg/pagination"
)

type Repository interface {
	Create(context context.Context, comment *Comment) error
	FindByID(context context.Context, id string) (*Comment, error)
	ListByVideo(context context.Context, videoID string, params pagination.Params) ([]*Comment, int64, error)
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, id string) error
}
