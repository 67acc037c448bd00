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

type UserHandler struct {
	accounts *services.AccountService
	feed     *services.FeedService
	graph    *services.GraphService
}

func NewUserHandler(accounts *services.AccountService, feed *services.FeedService, graph *services.GraphService) *UserHandler {
	return &UserHandler{accounts: accounts, feed: feed, graph: graph}
}

// Profile - /profile/:username
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := middleware.CurrentUser(c)

	user, err := h.accounts.GetUser(ctx, c.Param("username"))
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			redirectWithFlash(c, "/home", flashError, "User not found.")
			return
		}
		failRedirect(c, err, "/home")
		return
	}

	posts, err := h.feed.ListPostsFor(ctx, services.FeedFilter{Author: user.Username}, viewer)
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}
	followers, err := h.graph.ListFollowers(ctx, user.Username)
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}
	following, err := h.graph.ListFollowing(ctx, user.Username)
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}
	isFollowing, err := h.graph.IsFollowing(ctx, viewer, user.Username)
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}

	Render(c, http.StatusOK, "profile.html", gin.H{
		"Title":       user.Username,
		"User":        user,
		"Posts":       posts,
		"Followers":   followers,
		"Following":   following,
		"IsFollowing": isFollowing,
		"IsSelf":      viewer == user.Username,
		"DaysSince":   utils.GetDaysSinceJoined(user.CreatedAt),
	})
}

// Follow toggles following :username and returns to their profile.
func (h *UserHandler) Follow(c *gin.Context) {
	target := c.Param("username")
	state, err := h.graph.ToggleFollow(c.Request.Context(), middleware.CurrentUser(c), target)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			redirectWithFlash(c, "/home", flashError, "User not found.")
			return
		}
		failRedirect(c, err, "/home")
		return
	}

	switch state {
	case services.Followed:
		redirectWithFlash(c, profilePath(target), flashSuccess, fmt.Sprintf("You followed %s!", target))
	case services.Unfollowed:
		redirectWithFlash(c, profilePath(target), flashInfo, fmt.Sprintf("You unfollowed %s.", target))
	default:
		c.Redirect(http.StatusFound, "/home")
	}
}

func (h *UserHandler) ShowSettings(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		failRedirect(c, err, "/home")
		return
	}
	Render(c, http.StatusOK, "settings.html", gin.H{
		"Title":   "Settings",
		"User":    user,
		"Avatars": utils.AvatarChoices(),
	})
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	handle := middleware.CurrentUser(c)
	_, err := h.accounts.UpdateProfile(c.Request.Context(), handle, c.PostForm("bio"), c.PostForm("avatar"))
	if err != nil {
		failRedirect(c, err, "/settings")
		return
	}
	redirectWithFlash(c, profilePath(handle), flashSuccess, "Profile updated.")
}
