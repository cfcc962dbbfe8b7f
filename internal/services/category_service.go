package services

import (
	"context"
	"errors"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
)

type CategoryService struct {
	categories repositories.CategoryRepository
}

func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetCategories(ctx)
	if err != nil {
		return nil, storageError("list categories failed", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.GetCategoryByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(ErrNotFound, "Category not found")
	}
	if err != nil {
		return nil, storageError("get category failed", err)
	}
	return category, nil
}

// Create adds a category; names are unique
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (uint, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return 0, newError(ErrConflict, "Category %q already exists", req.Name)
		}
		return 0, storageError("create category failed", err)
	}
	return category.ID, nil
}
