package services

import (
	"context"
	"errors"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
)

// LikeService keeps the like relation. A (post, user) pair is either absent or
// present; the store's primary key is what keeps two concurrent likes of the
// same pair from both succeeding.
type LikeService struct {
	likes repositories.LikeRepository
	posts repositories.PostRepository
	users repositories.UserRepository
}

func NewLikeService(likes repositories.LikeRepository, posts repositories.PostRepository, users repositories.UserRepository) *LikeService {
	return &LikeService{likes: likes, posts: posts, users: users}
}

// Like records that userID likes postID and returns the post's new like count.
func (s *LikeService) Like(ctx context.Context, postID, userID uint) (int64, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return 0, storageError("post lookup failed", err)
	}
	if !exists {
		return 0, newError(ErrNotFound, "Post not found")
	}

	err = s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID})
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return 0, newError(ErrDuplicateEngagement, "You already liked this post")
	case errors.Is(err, repositories.ErrForeignKey):
		if err := checkActor(ctx, s.users, userID); err != nil {
			return 0, err
		}
		// post deleted after the existence check
		return 0, newError(ErrNotFound, "Post not found")
	case err != nil:
		return 0, storageError("like post failed", err)
	}
	return s.Count(ctx, postID)
}

// Unlike removes the pair if present. removed is 0 when there was nothing to
// unlike, which is not an error.
func (s *LikeService) Unlike(ctx context.Context, postID, userID uint) (removed, likeCount int64, err error) {
	removed, err = s.likes.DeleteLike(ctx, postID, userID)
	if err != nil {
		return 0, 0, storageError("unlike post failed", err)
	}
	likeCount, err = s.Count(ctx, postID)
	if err != nil {
		return removed, 0, err
	}
	return removed, likeCount, nil
}

// Count returns the number of likes currently stored for postID
func (s *LikeService) Count(ctx context.Context, postID uint) (int64, error) {
	count, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return 0, storageError("count likes failed", err)
	}
	return count, nil
}

func (s *LikeService) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	liked, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, storageError("like lookup failed", err)
	}
	return liked, nil
}

// PostLikeCount is Count for a post that must exist
func (s *LikeService) PostLikeCount(ctx context.Context, postID uint) (int64, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return 0, storageError("post lookup failed", err)
	}
	if !exists {
		return 0, newError(ErrNotFound, "Post not found")
	}
	return s.Count(ctx, postID)
}

// Status reports whether userID likes postID together with the current count.
func (s *LikeService) Status(ctx context.Context, postID, userID uint) (liked bool, likeCount int64, err error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return false, 0, storageError("post lookup failed", err)
	}
	if !exists {
		return false, 0, newError(ErrNotFound, "Post not found")
	}
	if liked, err = s.HasLiked(ctx, postID, userID); err != nil {
		return false, 0, err
	}
	if likeCount, err = s.Count(ctx, postID); err != nil {
		return false, 0, err
	}
	return liked, likeCount, nil
}
