package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
)

const (
	DefaultPageLimit  = 50
	DefaultPageOffset = 0
)

// Pagination is an offset/limit window over the newest-first post listing
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads the raw query values. Missing or malformed values
// fall back to the defaults, as do non-positive limits and negative offsets.
func ParsePagination(limit, offset string) Pagination {
	p := Pagination{Limit: DefaultPageLimit, Offset: DefaultPageOffset}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	if n, err := strconv.Atoi(offset); err == nil && n >= 0 {
		p.Offset = n
	}
	return p
}

// PostService implements create/update/delete and the read paths for posts.
// Every mutation of an existing post goes through the ownership check first.
type PostService struct {
	posts      repositories.PostRepository
	categories repositories.CategoryRepository
	users      repositories.UserRepository
}

func NewPostService(posts repositories.PostRepository, categories repositories.CategoryRepository, users repositories.UserRepository) *PostService {
	return &PostService{posts: posts, categories: categories, users: users}
}

// Create stores a new post owned by authorID and returns its ID
func (s *PostService) Create(ctx context.Context, authorID uint, req models.CreatePostRequest) (uint, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return 0, err
	}

	post := &models.Post{
		AuthorID:   authorID,
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrForeignKey) {
			if err := checkActor(ctx, s.users, authorID); err != nil {
				return 0, err
			}
			return 0, newError(ErrValidation, "Invalid category ID")
		}
		return 0, storageError("create post failed", err)
	}
	return post.ID, nil
}

// Update replaces title, body and category of a post owned by actingUserID.
// The check and the write are separate statements; a post deleted in between
// is reported as not found.
func (s *PostService) Update(ctx context.Context, postID, actingUserID uint, req models.UpdatePostRequest) error {
	if err := requireOwner(ctx, s.posts.GetPostAuthorID, postID, actingUserID, "Post", "update"); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return err
	}

	affected, err := s.posts.UpdatePost(ctx, postID, req.Title, req.Body, req.CategoryID)
	if err != nil {
		// author_id is not rewritten, so only the category reference can fail
		if errors.Is(err, repositories.ErrForeignKey) {
			return newError(ErrValidation, "Invalid category ID")
		}
		return storageError("update post failed", err)
	}
	if affected == 0 {
		return newError(ErrNotFound, "Post not found")
	}
	return nil
}

// Delete removes a post owned by actingUserID together with its comments and likes
func (s *PostService) Delete(ctx context.Context, postID, actingUserID uint) error {
	if err := requireOwner(ctx, s.posts.GetPostAuthorID, postID, actingUserID, "Post", "delete"); err != nil {
		return err
	}

	affected, err := s.posts.DeletePost(ctx, postID)
	if err != nil {
		return storageError("delete post failed", err)
	}
	if affected == 0 {
		return newError(ErrNotFound, "Post not found")
	}
	return nil
}

// GetByID returns a post with live engagement figures. viewerID 0 is anonymous.
func (s *PostService) GetByID(ctx context.Context, postID, viewerID uint) (*models.PostView, error) {
	post, err := s.posts.GetPostView(ctx, postID, viewerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(ErrNotFound, "Post not found")
	}
	if err != nil {
		return nil, storageError("get post failed", err)
	}
	return post, nil
}

// List returns a newest-first page of posts
func (s *PostService) List(ctx context.Context, page Pagination, viewerID uint) ([]models.PostView, error) {
	posts, err := s.posts.GetPostViews(ctx, page.Limit, page.Offset, viewerID)
	if err != nil {
		return nil, storageError("list posts failed", err)
	}
	return posts, nil
}

// ListByAuthor returns all posts written by authorID, newest first
func (s *PostService) ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.PostView, error) {
	posts, err := s.posts.GetPostViewsByAuthorID(ctx, authorID, viewerID)
	if err != nil {
		return nil, storageError("list author posts failed", err)
	}
	return posts, nil
}

func (s *PostService) checkCategory(ctx context.Context, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categories.GetCategoryByID(ctx, *categoryID)
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(ErrValidation, "Invalid category ID")
	}
	if err != nil {
		return storageError("category lookup failed", err)
	}
	return nil
}
