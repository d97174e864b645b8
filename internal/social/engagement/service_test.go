// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package engagement_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhduc/vidora/internal/platform/apperr"
	"github.com/leminhduc/vidora/internal/social/engagement"
	"github.com/leminhduc/vidora/pkg/pagination"
)

// # Test Doubles

type edgeKey struct {
	actorID  string
	targetID string
	kind     engagement.Kind
}

// fakeEdgeRepository is an in-memory EdgeRepository. The mutex plus the
// keyed map reproduce the unique-constraint semantics of the real table:
// a duplicate insert fails with a Conflict, exactly like the SQL store
// after dberr classification.
type fakeEdgeRepository struct {
	mu       sync.Mutex
	edges    map[edgeKey]*engagement.Edge
	channels map[string]bool
	videos   map[string]int64 // channel id -> video count, for stats
}

func newFakeEdgeRepository() *fakeEdgeRepository {
	return &fakeEdgeRepository{
		edges:    map[edgeKey]*engagement.Edge{},
		channels: map[string]bool{},
		videos:   map[string]int64{},
	}
}

func (f *fakeEdgeRepository) Exists(_ context.Context, actorID, targetID string, kind engagement.Kind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.edges[edgeKey{actorID, targetID, kind}]
	return ok, nil
}

func (f *fakeEdgeRepository) Create(_ context.Context, edge *engagement.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey{edge.ActorID, edge.TargetID, edge.Kind}
	if _, ok := f.edges[key]; ok {
		return apperr.Conflict("Resource already exists")
	}
	clone := *edge
	f.edges[key] = &clone
	return nil
}

func (f *fakeEdgeRepository) Delete(_ context.Context, actorID, targetID string, kind engagement.Kind) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := edgeKey{actorID, targetID, kind}
	if _, ok := f.edges[key]; !ok {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeEdgeRepository) ListLikedVideoIDs(_ context.Context, userID string, _ pagination.Params) ([]string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for key := range f.edges {
		if key.actorID == userID && key.kind == engagement.KindVideoLike {
			ids = append(ids, key.targetID)
		}
	}
	sort.Strings(ids)
	return ids, int64(len(ids)), nil
}

func (f *fakeEdgeRepository) ListSubscribers(_ context.Context, channelID string, _ pagination.Params) ([]engagement.ChannelProfile, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profiles := []engagement.ChannelProfile{}
	for key, edge := range f.edges {
		if key.targetID == channelID && key.kind == engagement.KindSubscription {
			profiles = append(profiles, engagement.ChannelProfile{ID: key.actorID, SubscribedAt: edge.CreatedAt})
		}
	}
	return profiles, int64(len(profiles)), nil
}

func (f *fakeEdgeRepository) ListSubscriptions(_ context.Context, userID string, _ pagination.Params) ([]engagement.ChannelProfile, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profiles := []engagement.ChannelProfile{}
	for key, edge := range f.edges {
		if key.actorID == userID && key.kind == engagement.KindSubscription {
			profiles = append(profiles, engagement.ChannelProfile{ID: key.targetID, SubscribedAt: edge.CreatedAt})
		}
	}
	return profiles, int64(len(profiles)), nil
}

func (f *fakeEdgeRepository) ChannelExists(_ context.Context, channelID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.channels[channelID], nil
}

func (f *fakeEdgeRepository) ChannelStats(_ context.Context, channelID string) (*engagement.ChannelStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &engagement.ChannelStats{TotalVideos: f.videos[channelID]}
	for key := range f.edges {
		if key.targetID == channelID && key.kind == engagement.KindSubscription {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

func (f *fakeEdgeRepository) edgeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edges)
}

// # Toggle Semantics

/*
TestToggle_FlipSequence verifies the like state alternates with every call.
*/
func TestToggle_FlipSequence(t *testing.T) {
	repo := newFakeEdgeRepository()
	service := engagement.NewService(repo)

	liked, err := service.ToggleVideoLike(context.Background(), "user-1", "video-1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = service.ToggleVideoLike(context.Background(), "user-1", "video-1")
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = service.ToggleVideoLike(context.Background(), "user-1", "video-1")
	require.NoError(t, err)
	assert.True(t, liked)
}

/*
TestToggle_KindsAreIndependent verifies the same (actor, target) pair can
carry edges of different kinds without interference.
*/
func TestToggle_KindsAreIndependent(t *testing.T) {
	repo := newFakeEdgeRepository()
	service := engagement.NewService(repo)

	liked, err := service.ToggleVideoLike(context.Background(), "user-1", "id-1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = service.ToggleCommentLike(context.Background(), "user-1", "id-1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = service.ToggleTweetLike(context.Background(), "user-1", "id-1")
	require.NoError(t, err)
	assert.True(t, liked)

	assert.Equal(t, 3, repo.edgeCount())

	// Removing one kind leaves the others intact.
	liked, err = service.ToggleVideoLike(context.Background(), "user-1", "id-1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 2, repo.edgeCount())
}

/*
TestToggle_DuplicateCreateRace verifies the loser of a duplicate insert
reports the edge as present, and exactly one edge row survives.
*/
func TestToggle_DuplicateCreateRace(t *testing.T) {
	repo := newFakeEdgeRepository()
	service := engagement.NewService(repo)

	const racers = 8
	results := make(chan struct {
		liked bool
		err   error
	}, racers)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			liked, err := service.ToggleVideoLike(context.Background(), "user-1", "video-1")
			results <- struct {
				liked bool
				err   error
			}{liked, err}
		}()
	}
	start.Done()

	for i := 0; i < racers; i++ {
		result := <-results
		require.NoError(t, result.err)
	}

	// However the race resolved, the table never holds a duplicate.
	assert.LessOrEqual(t, repo.edgeCount(), 1)
}

// staleReadEdgeRepository reports every edge as absent, forcing the service
// down the create path even when the edge already exists. This is exactly
// what the loser of a duplicate-create race observes.
type staleReadEdgeRepository struct {
	*fakeEdgeRepository
}

func (s *staleReadEdgeRepository) Exists(context.Context, string, string, engagement.Kind) (bool, error) {
	return false, nil
}

/*
TestToggle_LostRaceReportsPresent verifies the deterministic outcome of a
lost duplicate-create: the conflict is folded into "the edge exists".
*/
func TestToggle_LostRaceReportsPresent(t *testing.T) {
	repo := &staleReadEdgeRepository{newFakeEdgeRepository()}
	service := engagement.NewService(repo)

	liked, err := service.ToggleVideoLike(context.Background(), "user-1", "video-1")
	require.NoError(t, err)
	require.True(t, liked)

	// Second toggle reads a stale "absent", inserts, hits the unique
	// constraint — and still reports the edge as present.
	liked, err = service.ToggleVideoLike(context.Background(), "user-1", "video-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, repo.edgeCount())
}

/*
TestToggle_SelfEdge verifies a user may subscribe to their own channel.
*/
func TestToggle_SelfEdge(t *testing.T) {
	repo := newFakeEdgeRepository()
	repo.channels["user-1"] = true
	service := engagement.NewService(repo)

	subscribed, err := service.ToggleSubscription(context.Background(), "user-1", "user-1")
	require.NoError(t, err)
	assert.True(t, subscribed)
}

// # Subscriptions

/*
TestToggleSubscription_MissingChannel verifies the 404 gate that like
toggles deliberately do not have.
*/
func TestToggleSubscription_MissingChannel(t *testing.T) {
	repo := newFakeEdgeRepository()
	service := engagement.NewService(repo)

	_, err := service.ToggleSubscription(context.Background(), "user-1", "no-such-channel")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	// Likes skip the existence check entirely: a dangling edge is fine.
	liked, err := service.ToggleVideoLike(context.Background(), "user-1", "no-such-video")
	require.NoError(t, err)
	assert.True(t, liked)
}

/*
TestSubscription_ReflectedInLists verifies a toggle shows up in both the
subscriber list and the subscription list, and disappears after untoggle.
*/
func TestSubscription_ReflectedInLists(t *testing.T) {
	repo := newFakeEdgeRepository()
	repo.channels["channel-1"] = true
	repo.channels["user-1"] = true
	service := engagement.NewService(repo)

	subscribed, err := service.ToggleSubscription(context.Background(), "user-1", "channel-1")
	require.NoError(t, err)
	require.True(t, subscribed)

	subscribers, total, err := service.ChannelSubscribers(context.Background(), "channel-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "user-1", subscribers[0].ID)

	subscriptions, total, err := service.SubscribedChannels(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, "channel-1", subscriptions[0].ID)

	// Untoggle empties both sides.
	subscribed, err = service.ToggleSubscription(context.Background(), "user-1", "channel-1")
	require.NoError(t, err)
	require.False(t, subscribed)

	_, total, err = service.ChannelSubscribers(context.Background(), "channel-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

/*
TestChannelSubscribers_MissingChannel verifies listings 404 on unknown channels.
*/
func TestChannelSubscribers_MissingChannel(t *testing.T) {
	service := engagement.NewService(newFakeEdgeRepository())

	_, _, err := service.ChannelSubscribers(context.Background(), "ghost", pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	_, _, err = service.SubscribedChannels(context.Background(), "ghost", pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Reads

/*
TestLikedVideos verifies liked video ids accumulate and shrink with toggles.
*/
func TestLikedVideos(t *testing.T) {
	repo := newFakeEdgeRepository()
	service := engagement.NewService(repo)

	for _, videoID := range []string{"video-1", "video-2", "video-3"} {
		_, err := service.ToggleVideoLike(context.Background(), "user-1", videoID)
		require.NoError(t, err)
	}
	_, err := service.ToggleVideoLike(context.Background(), "user-1", "video-2")
	require.NoError(t, err)

	ids, total, err := service.LikedVideos(context.Background(), "user-1", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"video-1", "video-3"}, ids)
}

/*
TestStats verifies the aggregated channel dashboard counts.
*/
func TestStats(t *testing.T) {
	repo := newFakeEdgeRepository()
	repo.channels["channel-1"] = true
	repo.videos["channel-1"] = 4
	service := engagement.NewService(repo)

	for _, subscriber := range []string{"user-1", "user-2", "user-3"} {
		_, err := service.ToggleSubscription(context.Background(), subscriber, "channel-1")
		require.NoError(t, err)
	}

	stats, err := service.Stats(context.Background(), "channel-1")
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVideos)
	assert.EqualValues(t, 3, stats.TotalSubscribers)

	_, err = service.Stats(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
