package handlers

import (
	"net/http"

	"echoes/internal/middleware"
	"echoes/internal/models"
	"echoes/internal/services"
	"echoes/internal/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the AJAX endpoints used by the feed pages.
type APIHandler struct {
	engagement *services.EngagementService
}

func NewAPIHandler(engagement *services.EngagementService) *APIHandler {
	return &APIHandler{engagement: engagement}
}

// ToggleLike responds with {"likes": n}.
func (h *APIHandler) ToggleLike(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		failJSON(c, models.NewNotFoundError("post", c.Param("id")))
		return
	}

	count, err := h.engagement.ToggleLike(c.Request.Context(), postID, middleware.CurrentUser(c))
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": count})
}

type commentRequest struct {
	PostID uint   `json:"post_id" form:"post_id"`
	Text   string `json:"text" form:"text"`
}

// CreateComment accepts a JSON or form body and responds with {"user", "text"}.
func (h *APIHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		failJSON(c, models.NewValidationError("Invalid request body."))
		return
	}
	if req.PostID == 0 {
		failJSON(c, models.NewNotFoundError("post", req.PostID))
		return
	}

	comment, err := h.engagement.CreateComment(c.Request.Context(), req.PostID, middleware.CurrentUser(c), req.Text)
	if err != nil {
		failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": comment.Username, "text": comment.Text})
}
