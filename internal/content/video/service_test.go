// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package video_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhduc/vidora/internal/content/video"
	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/pkg/pagination"
)

type fakeVideoRepository struct {
	videos map[string]*video.Video
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{videos: map[string]*video.Video{}}
}

func (f *fakeVideoRepository) Create(_ context.Context, v *video.Video) error {
	clone := *v
	f.videos[v.ID] = &clone
	return nil
}

func (f *fakeVideoRepository) FindByID(_ context.Context, id string) (*video.Video, error) {
	if v, ok := f.videos[id]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, apperr.NotFound("Video")
}

func (f *fakeVideoRepository) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.videos[id]
	return ok, nil
}

func (f *fakeVideoRepository) List(_ context.Context, filter video.ListFilter, _ pagination.Params) ([]*video.Video, int64, error) {
	result := []*video.Video{}
	for _, v := range f.videos {
		if filter.PublishedOnly && !v.IsPublished {
			continue
		}
		clone := *v
		result = append(result, &clone)
	}
	return result, int64(len(result)), nil
}

func (f *fakeVideoRepository) Update(_ context.Context, v *video.Video) error {
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoRepository) Delete(_ context.Context, id string) error {
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepository) SetPublished(_ context.Context, id string, published bool) error {
	if v, ok := f.videos[id]; ok {
		v.IsPublished = published
	}
	return nil
}

type fakeViewCounter struct {
	counts map[string]int64
	fail   bool
}

func (f *fakeViewCounter) Increment(_ context.Context, videoID string) (int64, error) {
	if f.fail {
		return 0, errors.New("counter down")
	}
	f.counts[videoID]++
	return f.counts[videoID], nil
}

func (f *fakeViewCounter) Get(_ context.Context, videoIDs ...string) (map[string]int64, error) {
	if f.fail {
		return nil, errors.New("counter down")
	}
	return f.counts, nil
}

func newTestVideoService() (*video.Service, *fakeVideoRepository, *fakeViewCounter) {
	repo := newFakeVideoRepository()
	counter := &fakeViewCounter{counts: map[string]int64{}}
	return video.NewService(repo, counter), repo, counter
}

func TestVideo_GetIncrementsViews(t *testing.T) {
	service, _, _ := newTestVideoService()

	created, err := service.Create(context.Background(), "owner-1", video.CreateInput{
		Title:    "First upload",
		VideoURL: "https://cdn.vidora.app/v/1.mp4",
	})
	require.NoError(t, err)

	first, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Views)

	second, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Views)
}

func TestVideo_GetSurvivesCounterOutage(t *testing.T) {
	service, _, counter := newTestVideoService()

	created, err := service.Create(context.Background(), "owner-1", video.CreateInput{
		Title:    "First upload",
		VideoURL: "https://cdn.vidora.app/v/1.mp4",
	})
	require.NoError(t, err)

	counter.fail = true
	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err, "a counter outage must not break playback")
	assert.EqualValues(t, 0, got.Views)
}

func TestVideo_OwnerOnlyMutations(t *testing.T) {
	service, _, _ := newTestVideoService()

	created, err := service.Create(context.Background(), "owner-1", video.CreateInput{
		Title:    "First upload",
		VideoURL: "https://cdn.vidora.app/v/1.mp4",
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "intruder", created.ID, video.UpdateInput{Title: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	err = service.Delete(context.Background(), "intruder", created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	_, err = service.TogglePublish(context.Background(), "intruder", created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)

	updated, err := service.Update(context.Background(), "owner-1", created.ID, video.UpdateInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestVideo_TogglePublish(t *testing.T) {
	service, _, _ := newTestVideoService()

	created, err := service.Create(context.Background(), "owner-1", video.CreateInput{
		Title:    "First upload",
		VideoURL: "https://cdn.vidora.app/v/1.mp4",
	})
	require.NoError(t, err)
	require.True(t, created.IsPublished)

	published, err := service.TogglePublish(context.Background(), "owner-1", created.ID)
	require.NoError(t, err)
	assert.False(t, published)

	// Unpublished videos drop out of the public listing.
	videos, total, err := service.List(context.Background(), video.ListFilter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, videos)
}
