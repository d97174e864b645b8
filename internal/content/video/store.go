// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video

import (
	"context"

	"github.com/leminhduc/vidora/pkg/pagination"
)

// Repository defines the persistent data access contract for videos.
type Repository interface {
	Create(context context.Context, video *Video) error
	FindByID(context context.Context, id string) (*Video, error)
	Exists(context context.Context, id string) (bool, error)
	List(context context.Context, filter ListFilter, params pagination.Params) ([]*Video, int64, error)
	Update(context context.Context, video *Video) error
	Delete(context context.Context, id string) error
	SetPublished(context context.Context, id string, published bool) error
}

// ViewCounter tracks per-video view counts in volatile storage.
type ViewCounter interface {
	// Increment bumps the counter and returns the new total.
	Increment(context context.Context, videoID string) (int64, error)
	// Get returns the current totals for the given video ids. Missing
	// counters read as zero.
	Get(context context.Context, videoIDs ...string) (map[string]int64, error)
}
