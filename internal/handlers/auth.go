package handlers

import (
	"net/http"

	"echoes/internal/middleware"
	"echoes/internal/models"
	"echoes/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "register.html", gin.H{"Title": "Join"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	_, err := h.accounts.Register(c.Request.Context(),
		c.PostForm("username"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		failRedirect(c, err, "/register")
		return
	}
	redirectWithFlash(c, "/register", flashSuccess, "Registration successful! You can now log in.")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != "" {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	Render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Username": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	user, err := h.accounts.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		logIfInternal(c, err)
		Render(c, statusFor(err), "login.html", gin.H{
			"Title":    "Log in",
			"Error":    models.UserMessage(err),
			"Username": username,
		})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(middleware.SessionUserKey, user.Username)
	if err := session.Save(); err != nil {
		failRedirect(c, models.NewInternalError(err), "/login")
		return
	}
	c.Redirect(http.StatusFound, "/home")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserKey)
	redirectWithFlash(c, "/", flashInfo, "You have logged out.")
}
