package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_LikeTwiceIsDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	count, err := f.likes.Like(ctx, postID, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.likes.Like(ctx, postID, f.bob.ID)
	require.ErrorIs(t, err, services.ErrDuplicateEngagement)
	assert.Equal(t, "DUPLICATE_ENGAGEMENT", services.KindOf(err))

	count, err = f.likes.Count(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeService_UnlikeWithoutLikeIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	removed, count, err := f.likes.Unlike(ctx, postID, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
	assert.Equal(t, int64(0), count)

	removed, _, err = f.likes.Unlike(ctx, 9999, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestLikeService_LikeMissingPost(t *testing.T) {
	f := newFixture(t)

	_, err := f.likes.Like(context.Background(), 9999, f.bob.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, _, err = f.likes.Status(context.Background(), 9999, f.bob.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestLikeService_CountMatchesLikeSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	type step struct {
		like bool
		user uint
	}
	steps := []step{
		{true, f.bob.ID}, {true, f.carol.ID}, {true, f.bob.ID}, {false, f.alice.ID},
		{false, f.bob.ID}, {true, f.alice.ID}, {false, f.bob.ID}, {true, f.bob.ID},
		{false, f.carol.ID}, {true, f.carol.ID}, {true, f.carol.ID},
	}

	likedBy := map[uint]bool{}
	for i, s := range steps {
		var err error
		if s.like {
			_, err = f.likes.Like(ctx, postID, s.user)
			if likedBy[s.user] {
				require.ErrorIs(t, err, services.ErrDuplicateEngagement, "step %d", i)
			} else {
				require.NoError(t, err, "step %d", i)
			}
			likedBy[s.user] = true
		} else {
			var removed int64
			removed, _, err = f.likes.Unlike(ctx, postID, s.user)
			require.NoError(t, err, "step %d", i)
			assert.Equal(t, likedBy[s.user], removed == 1, "step %d", i)
			delete(likedBy, s.user)
		}

		count, err := f.likes.Count(ctx, postID)
		require.NoError(t, err)
		assert.Equal(t, int64(len(likedBy)), count, "step %d", i)

		post, err := f.posts.GetByID(ctx, postID, s.user)
		require.NoError(t, err)
		assert.Equal(t, int64(len(likedBy)), post.LikeCount, "step %d", i)
		require.NotNil(t, post.ViewerHasLiked)
		assert.Equal(t, likedBy[s.user], *post.ViewerHasLiked, "step %d", i)
	}
}

func TestLikeService_ConcurrentLikesOfSamePair(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.likes.Like(ctx, postID, f.bob.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, services.ErrDuplicateEngagement):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, duplicates)

	liked, count, err := f.likes.Status(ctx, postID, f.bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestLikeService_DeletedPostTakesLikesWithIt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)
	_, err := f.likes.Like(ctx, postID, f.bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, postID, f.alice.ID))

	count, err := f.likes.Count(ctx, postID)
	require.NoError(t, err)
	assert.Zero(t, count)
	liked, err := f.likes.HasLiked(ctx, postID, f.bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}
