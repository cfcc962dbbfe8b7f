package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/anonto42/inkpost/backend/internal/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	posts      *services.PostService
	comments   *services.CommentService
	likes      *services.LikeService
	categories *services.CategoryService

	alice, bob, carol *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	postRepo := repositories.NewPostgresPostRepository(db)
	categoryRepo := repositories.NewPostgresCategoryRepository(db)
	userRepo := repositories.NewPostgresUserRepository(db)

	return &fixture{
		db:         db,
		posts:      services.NewPostService(postRepo, categoryRepo, userRepo),
		comments:   services.NewCommentService(repositories.NewPostgresCommentRepository(db), postRepo, userRepo),
		likes:      services.NewLikeService(repositories.NewPostgresLikeRepository(db), postRepo, userRepo),
		categories: services.NewCategoryService(categoryRepo),
		alice:      testutil.CreateUser(t, db, "alice"),
		bob:        testutil.CreateUser(t, db, "bob"),
		carol:      testutil.CreateUser(t, db, "carol"),
	}
}

func (f *fixture) createPost(t *testing.T, author *models.User) uint {
	t.Helper()
	id, err := f.posts.Create(context.Background(), author.ID, models.CreatePostRequest{
		Title: "Hello World Example",
		Body:  "This body is long enough.",
	})
	require.NoError(t, err)
	return id
}

// mockPostRepository lets tests fail the store on demand
type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetPostAuthorID(ctx context.Context, id uint) (uint, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepository) GetPostView(ctx context.Context, id, viewerID uint) (*models.PostView, error) {
	args := m.Called(ctx, id, viewerID)
	view, _ := args.Get(0).(*models.PostView)
	return view, args.Error(1)
}

func (m *mockPostRepository) GetPostViews(ctx context.Context, limit, offset int, viewerID uint) ([]models.PostView, error) {
	args := m.Called(ctx, limit, offset, viewerID)
	views, _ := args.Get(0).([]models.PostView)
	return views, args.Error(1)
}

func (m *mockPostRepository) GetPostViewsByAuthorID(ctx context.Context, authorID, viewerID uint) ([]models.PostView, error) {
	args := m.Called(ctx, authorID, viewerID)
	views, _ := args.Get(0).([]models.PostView)
	return views, args.Error(1)
}

func (m *mockPostRepository) UpdatePost(ctx context.Context, id uint, title, body string, categoryID *uint) (int64, error) {
	args := m.Called(ctx, id, title, body, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepository) DeletePost(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
