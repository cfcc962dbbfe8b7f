package services

import (
	"context"
	"errors"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
)

// CommentService creates, lists and deletes comments. Comments are never edited.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, users repositories.UserRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users}
}

// Create adds a comment to postID. The post is looked up before the insert;
// a post deleted in between trips the foreign key and is reported the same way.
func (s *CommentService) Create(ctx context.Context, postID, authorID uint, req models.CreateCommentRequest) (uint, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return 0, storageError("post lookup failed", err)
	}
	if !exists {
		return 0, newError(ErrParentNotFound, "Post not found")
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     req.Body,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			if err := checkActor(ctx, s.users, authorID); err != nil {
				return 0, err
			}
			return 0, newError(ErrParentNotFound, "Post not found")
		}
		return 0, storageError("create comment failed", err)
	}
	return comment.ID, nil
}

// Delete removes a comment written by actingUserID
func (s *CommentService) Delete(ctx context.Context, commentID, actingUserID uint) error {
	if err := requireOwner(ctx, s.comments.GetCommentAuthorID, commentID, actingUserID, "Comment", "delete"); err != nil {
		return err
	}

	affected, err := s.comments.DeleteComment(ctx, commentID)
	if err != nil {
		return storageError("delete comment failed", err)
	}
	if affected == 0 {
		return newError(ErrNotFound, "Comment not found")
	}
	return nil
}

// ListByPost returns the comments of an existing post, newest first
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	exists, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return nil, storageError("post lookup failed", err)
	}
	if !exists {
		return nil, newError(ErrNotFound, "Post not found")
	}

	comments, err := s.comments.GetCommentViewsByPostID(ctx, postID)
	if err != nil {
		return nil, storageError("list comments failed", err)
	}
	return comments, nil
}

// Count returns the live number of comments on a post
func (s *CommentService) Count(ctx context.Context, postID uint) (int64, error) {
	count, err := s.comments.CountCommentsByPostID(ctx, postID)
	if err != nil {
		return 0, storageError("count comments failed", err)
	}
	return count, nil
}
