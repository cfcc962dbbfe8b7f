package handlers

import (
	"net/http"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/comments/post/:postId", h.GetCommentsByPostID)
	g.POST("/comments/post/:postId", h.CreateComment, requireAuth)
	g.DELETE("/comments/:id", h.DeleteComment, requireAuth)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "postId", "post")
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	commentID, err := h.commentService.Create(ctx, postID, userID, req)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.commentService.Count(ctx, postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":       true,
		"message":       "Comment added successfully",
		"comment_id":    commentID,
		"comment_count": count,
	})
}

// GetCommentsByPostID lists a post's comments, newest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseID(c, "postId", "post")
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.commentService.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments})
}

// DeleteComment deletes a comment owned by the authenticated user
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "id", "comment")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.commentService.Delete(c.Request().Context(), commentID, userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Comment deleted successfully"})
}
