package handlers

import (
	"net/http"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterCategoryRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/categories", h.GetCategories)
	g.GET("/categories/:id", h.GetCategory)
	g.POST("/categories", h.CreateCategory, requireAuth)
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "categories": categories})
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c, "id", "category")
	if err != nil {
		return respondError(c, err)
	}
	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "category": category})
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	id, err := h.categoryService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":     true,
		"message":     "Category created successfully",
		"category_id": id,
	})
}
