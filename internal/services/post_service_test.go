package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		limit, offset string
		want          services.Pagination
	}{
		{"", "", services.Pagination{Limit: 50, Offset: 0}},
		{"10", "20", services.Pagination{Limit: 10, Offset: 20}},
		{"abc", "-1", services.Pagination{Limit: 50, Offset: 0}},
		{"0", "0", services.Pagination{Limit: 50, Offset: 0}},
		{"-5", "x", services.Pagination{Limit: 50, Offset: 0}},
		{"1000", "3", services.Pagination{Limit: 1000, Offset: 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.ParsePagination(tt.limit, tt.offset), "limit=%q offset=%q", tt.limit, tt.offset)
	}
}

func TestPostService_UpdateByNonOwnerIsForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	err := f.posts.Update(ctx, postID, f.bob.ID, models.UpdatePostRequest{
		Title: "Hijacked title",
		Body:  "Hijacked body text",
	})
	require.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, "Not authorized to update this post", services.MessageOf(err))

	post, err := f.posts.GetByID(ctx, postID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello World Example", post.Title)
	assert.Equal(t, "This body is long enough.", post.Body)
}

func TestPostService_UpdateByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)
	categoryID, err := f.categories.Create(ctx, models.CreateCategoryRequest{Name: "Golang"})
	require.NoError(t, err)

	err = f.posts.Update(ctx, postID, f.alice.ID, models.UpdatePostRequest{
		Title:      "Edited title",
		Body:       "Edited body text",
		CategoryID: &categoryID,
	})
	require.NoError(t, err)

	post, err := f.posts.GetByID(ctx, postID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Edited title", post.Title)
	require.NotNil(t, post.CategoryName)
	assert.Equal(t, "Golang", *post.CategoryName)
}

func TestPostService_MissingPostIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.posts.Update(ctx, 9999, f.alice.ID, models.UpdatePostRequest{Title: "Whatever", Body: "Whatever body"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.NotErrorIs(t, err, services.ErrForbidden)

	err = f.posts.Delete(ctx, 9999, f.alice.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.posts.GetByID(ctx, 9999, 0)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPostService_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	postID := f.createPost(t, f.alice)

	require.NoError(t, f.posts.Delete(ctx, postID, f.alice.ID))

	err := f.posts.Delete(ctx, postID, f.alice.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPostService_UnknownCategoryIsInvalid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	missing := uint(77)

	_, err := f.posts.Create(ctx, f.alice.ID, models.CreatePostRequest{
		Title:      "Categorised post",
		Body:       "Body of the categorised post",
		CategoryID: &missing,
	})
	require.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, "Invalid category ID", services.MessageOf(err))
}

func TestPostService_ListIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ids := []uint{f.createPost(t, f.alice), f.createPost(t, f.bob), f.createPost(t, f.alice)}

	posts, err := f.posts.List(ctx, services.ParsePagination("", ""), 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, ids[2], posts[0].ID)
	assert.Equal(t, ids[1], posts[1].ID)
	assert.Equal(t, ids[0], posts[2].ID)

	mine, err := f.posts.ListByAuthor(ctx, f.alice.ID, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.NotNil(t, mine[0].ViewerHasLiked)
	assert.False(t, *mine[0].ViewerHasLiked)
}

func TestPostService_StorageFailureIsHidden(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPostRepository)
	repo.On("GetPostAuthorID", mock.Anything, uint(1)).Return(uint(0), errors.New("connection refused"))
	svc := services.NewPostService(repo, nil, nil)

	err := svc.Delete(ctx, 1, 1)
	require.ErrorIs(t, err, services.ErrStorage)
	assert.Equal(t, "STORAGE_FAILURE", services.KindOf(err))
	assert.Equal(t, "Internal server error", services.MessageOf(err))
	assert.Contains(t, err.Error(), "connection refused")
	repo.AssertExpectations(t)
}

func TestPostService_WriteRacingDeleteIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPostRepository)
	// the post is owned at check time but gone by the time the write runs
	repo.On("GetPostAuthorID", mock.Anything, uint(5)).Return(uint(9), nil)
	repo.On("DeletePost", mock.Anything, uint(5)).Return(int64(0), nil)
	svc := services.NewPostService(repo, nil, nil)

	err := svc.Delete(ctx, 5, 9)
	assert.ErrorIs(t, err, services.ErrNotFound)
	repo.AssertExpectations(t)
}
