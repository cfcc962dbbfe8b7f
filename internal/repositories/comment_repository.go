package repositories

import (
	"context"

	"github.com/anonto42/inkpost/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentAuthorID(ctx context.Context, id uint) (uint, error)
	GetCommentViewsByPostID(ctx context.Context, postID uint) ([]models.CommentView, error)
	CountCommentsByPostID(ctx context.Context, postID uint) (int64, error)
	DeleteComment(ctx context.Context, id uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository on top of gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts a comment. A missing post surfaces as ErrForeignKey.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (r *PostgresCommentRepository) GetCommentAuthorID(ctx context.Context, id uint) (uint, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Select("author_id").Where("id = ?", id).Take(&comment).Error
	if err != nil {
		return 0, classify(err)
	}
	return comment.AuthorID, nil
}

// GetCommentViewsByPostID lists the comments of a post, newest first
func (r *PostgresCommentRepository) GetCommentViewsByPostID(ctx context.Context, postID uint) ([]models.CommentView, error) {
	comments := []models.CommentView{}
	err := r.db.WithContext(ctx).Raw(`SELECT c.id, c.post_id, c.author_id, u.username AS author_username, c.body, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.created_at DESC, c.id DESC`, postID).Scan(&comments).Error
	if err != nil {
		return nil, classify(err)
	}
	return comments, nil
}

func (r *PostgresCommentRepository) CountCommentsByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// DeleteComment deletes a comment by ID and reports how many rows went away
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	return res.RowsAffected, classify(res.Error)
}
