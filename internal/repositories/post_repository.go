package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/inkpost/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostAuthorID(ctx context.Context, id uint) (uint, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	GetPostView(ctx context.Context, id, viewerID uint) (*models.PostView, error)
	GetPostViews(ctx context.Context, limit, offset int, viewerID uint) ([]models.PostView, error)
	GetPostViewsByAuthorID(ctx context.Context, authorID, viewerID uint) ([]models.PostView, error)
	UpdatePost(ctx context.Context, id uint, title, body string, categoryID *uint) (int64, error)
	DeletePost(ctx context.Context, id uint) (int64, error)
}

// PostgresPostRepository implements PostRepository on top of gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Like and comment counts are subqueries so every read sees the live rows.
const postViewColumns = `p.id, p.author_id, u.username AS author_username, p.title, p.body,
	p.category_id, c.name AS category_name, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count`

const viewerHasLikedColumn = `,
	EXISTS(SELECT 1 FROM likes vl WHERE vl.post_id = p.id AND vl.user_id = ?) AS viewer_has_liked`

const postViewFrom = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

const newestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

// CreatePost inserts the post and fills in its ID and timestamps
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

// GetPostAuthorID returns the owner of a post, or ErrNotFound
func (r *PostgresPostRepository) GetPostAuthorID(ctx context.Context, id uint) (uint, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Select("author_id").Where("id = ?", id).Take(&post).Error
	if err != nil {
		return 0, classify(err)
	}
	return post.AuthorID, nil
}

func (r *PostgresPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}

// GetPostView returns one post with its engagement figures. viewerID 0 means anonymous.
func (r *PostgresPostRepository) GetPostView(ctx context.Context, id, viewerID uint) (*models.PostView, error) {
	views, err := r.selectViews(ctx, viewerID, " WHERE p.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}

// GetPostViews returns a newest-first page of posts
func (r *PostgresPostRepository) GetPostViews(ctx context.Context, limit, offset int, viewerID uint) ([]models.PostView, error) {
	return r.selectViews(ctx, viewerID, newestFirst+" LIMIT ? OFFSET ?", limit, offset)
}

// GetPostViewsByAuthorID returns every post of one author, newest first
func (r *PostgresPostRepository) GetPostViewsByAuthorID(ctx context.Context, authorID, viewerID uint) ([]models.PostView, error) {
	return r.selectViews(ctx, viewerID, " WHERE p.author_id = ?"+newestFirst, authorID)
}

// UpdatePost replaces title, body and category. It reports the number of rows
// touched so callers can detect a post deleted after their ownership check.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id uint, title, body string, categoryID *uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       title,
		"body":        body,
		"category_id": categoryID,
	})
	return res.RowsAffected, classify(res.Error)
}

// DeletePost removes a post; comments and likes go with it through ON DELETE CASCADE
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	return res.RowsAffected, classify(res.Error)
}

func (r *PostgresPostRepository) selectViews(ctx context.Context, viewerID uint, tail string, args ...interface{}) ([]models.PostView, error) {
	var query strings.Builder
	query.WriteString("SELECT ")
	query.WriteString(postViewColumns)

	params := make([]interface{}, 0, len(args)+1)
	if viewerID != 0 {
		query.WriteString(viewerHasLikedColumn)
		params = append(params, viewerID)
	}
	query.WriteString(postViewFrom)
	query.WriteString(tail)
	params = append(params, args...)

	views := []models.PostView{}
	if err := r.db.WithContext(ctx).Raw(query.String(), params...).Scan(&views).Error; err != nil {
		return nil, classify(err)
	}
	return views, nil
}
