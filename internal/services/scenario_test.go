package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, c := f.alice.ID, f.bob.ID, f.carol.ID

	postID, err := f.posts.Create(ctx, a, models.CreatePostRequest{
		Title: "Hello World Example",
		Body:  "Body with at least ten characters",
	})
	require.NoError(t, err)
	require.NotZero(t, postID)

	count, err := f.likes.Like(ctx, postID, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.likes.Like(ctx, postID, b)
	require.ErrorIs(t, err, services.ErrDuplicateEngagement)
	count, err = f.likes.Count(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	removed, count, err := f.likes.Unlike(ctx, postID, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, int64(0), count)

	err = f.posts.Delete(ctx, postID, c)
	require.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, f.posts.Delete(ctx, postID, a))

	_, err = f.posts.GetByID(ctx, postID, 0)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
