package repositories

import (
	"context"

	"github.com/anonto42/inkpost/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID uint) (int64, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository on top of gorm
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the (post, user) pair. A second insert of the same pair
// fails with ErrDuplicate.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error)
}

// DeleteLike removes the pair and returns the rows removed (0 or 1)
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	return res.RowsAffected, classify(res.Error)
}

// GetLikesCountByPostID counts the likes currently stored for a post
func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, classify(err)
	}
	return count > 0, nil
}
