package handlers

import (
	"fmt"
	"net/http"

	"echoes/internal/middleware"
	"echoes/internal/models"
	"echoes/internal/services"
	"echoes/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	feed       *services.FeedService
	engagement *services.EngagementService
}

func NewPostHandler(feed *services.FeedService, engagement *services.EngagementService) *PostHandler {
	return &PostHandler{feed: feed, engagement: engagement}
}

// Index is the landing page; signed-in users go straight to their feed.
func (h *PostHandler) Index(c *gin.Context) {
	if middleware.CurrentUser(c) != "" {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	Render(c, http.StatusOK, "index.html", gin.H{"Title": "Echoes of Hope"})
}

func (h *PostHandler) Home(c *gin.Context) {
	posts, err := h.feed.ListPostsFor(c.Request.Context(), services.FeedFilter{}, middleware.CurrentUser(c))
	if err != nil {
		logIfInternal(c, err)
		RenderError(c, statusFor(err), models.UserMessage(err))
		return
	}
	Render(c, http.StatusOK, "home.html", gin.H{
		"Title": "Home",
		"Posts": posts,
	})
}

func (h *PostHandler) Stories(c *gin.Context) {
	h.listKind(c, models.PostKindStory, "Stories")
}

func (h *PostHandler) Quotes(c *gin.Context) {
	h.listKind(c, models.PostKindQuote, "Quotes")
}

func (h *PostHandler) listKind(c *gin.Context, kind models.PostKind, title string) {
	posts, err := h.feed.ListPostsFor(c.Request.Context(), services.FeedFilter{Kind: &kind}, middleware.CurrentUser(c))
	if err != nil {
		logIfInternal(c, err)
		RenderError(c, statusFor(err), models.UserMessage(err))
		return
	}
	Render(c, http.StatusOK, "feed.html", gin.H{
		"Title": title,
		"Kind":  string(kind),
		"Posts": posts,
	})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	kind := models.PostKind(c.PostForm("type"))
	_, err := h.engagement.CreatePost(c.Request.Context(), middleware.CurrentUser(c), c.PostForm("text"), kind)
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}
	redirectWithFlash(c, "/home", flashSuccess, fmt.Sprintf("Your %s has been shared!", kind))
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	back := backPath(c, "/home")
	postID, ok := utils.ParseID(c.PostForm("post_id"))
	if !ok {
		redirectWithFlash(c, back, flashError, "Post not found.")
		return
	}

	_, err := h.engagement.CreateComment(c.Request.Context(), postID, middleware.CurrentUser(c), c.PostForm("text"))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			redirectWithFlash(c, back, flashError, "Post not found.")
			return
		}
		failRedirect(c, err, back)
		return
	}
	redirectWithFlash(c, back, flashSuccess, "Comment added!")
}

// Share reposts the post onto the signed-in user's profile.
func (h *PostHandler) Share(c *gin.Context) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		redirectWithFlash(c, "/home", flashError, "Post not found.")
		return
	}

	ctx := c.Request.Context()
	repostID, err := h.engagement.CreateRepost(ctx, postID, middleware.CurrentUser(c))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			redirectWithFlash(c, "/home", flashError, "Post not found.")
			return
		}
		failRedirect(c, err, "/home")
		return
	}

	repost, err := h.feed.GetPost(ctx, repostID)
	if err != nil || repost.OriginalAuthor == nil {
		redirectWithFlash(c, "/home", flashSuccess, "Post shared!")
		return
	}
	redirectWithFlash(c, "/home", flashSuccess,
		fmt.Sprintf("You shared %s's %s!", *repost.OriginalAuthor, repost.Kind))
}
