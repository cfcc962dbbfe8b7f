package handlers

import (
	"net/http"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes. Reads are public but
// personalised when a token is present.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth, optionalAuth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts, optionalAuth)
	g.GET("/posts/user/my-posts", h.GetMyPosts, requireAuth)
	g.GET("/posts/:id", h.GetPost, optionalAuth)
	g.POST("/posts", h.CreatePost, requireAuth)
	g.PUT("/posts/:id", h.UpdatePost, requireAuth)
	g.DELETE("/posts/:id", h.DeletePost, requireAuth)
}

// GetPosts lists posts newest first; ?limit and ?offset default to 50 and 0
func (h *PostHandler) GetPosts(c echo.Context) error {
	page := services.ParsePagination(c.QueryParam("limit"), c.QueryParam("offset"))

	posts, err := h.postService.List(c.Request().Context(), page, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// GetMyPosts lists the authenticated user's own posts
func (h *PostHandler) GetMyPosts(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.ListByAuthor(c.Request().Context(), userID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": posts})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.postService.GetByID(c.Request().Context(), postID, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	postID, err := h.postService.Create(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Post created successfully",
		"post_id": postID,
	})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.postService.Update(c.Request().Context(), postID, userID, req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post updated successfully"})
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.postService.Delete(c.Request().Context(), postID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Post deleted successfully"})
}
