package handlers

import (
	"net/http"

	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes. Only the count is public.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts/:id/likes/count", h.GetLikesCountForPost)
	g.POST("/posts/:id/like", h.LikePost, requireAuth)
	g.DELETE("/posts/:id/unlike", h.UnlikePost, requireAuth)
	g.GET("/posts/:id/likes/status", h.GetUserLikeStatusForPost, requireAuth)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.likeService.Like(c.Request().Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Post liked successfully",
		"like_count": count,
	})
}

// UnlikePost handles unliking a post. Unliking a post that was never liked
// succeeds with removed set to 0.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	removed, count, err := h.likeService.Unlike(c.Request().Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	message := "Post unliked successfully"
	if removed == 0 {
		message = "Post was not liked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    message,
		"removed":    removed,
		"like_count": count,
	})
}

// GetLikesCountForPost returns the number of likes on a post
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.likeService.PostLikeCount(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"post_id":    postID,
		"like_count": count,
	})
}

// GetUserLikeStatusForPost checks if the authenticated user has liked a post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post")
	if err != nil {
		return respondError(c, err)
	}

	liked, count, err := h.likeService.Status(c.Request().Context(), postID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"post_id":    postID,
		"has_liked":  liked,
		"like_count": count,
	})
}
