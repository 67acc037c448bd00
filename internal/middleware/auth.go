package middleware

import (
	"net/http"

	"echoes/internal/models"
	"echoes/internal/observability"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the session field holding the signed-in handle.
const SessionUserKey = "username"

// CurrentUserKey is the gin context key for the signed-in handle.
const CurrentUserKey = "current_user"

const loginRequiredMessage = "Please log in first."

// LoadUser copies the session handle onto the gin context and the request
// context so handlers and logs can see it. It never rejects a request.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if username, ok := session.Get(SessionUserKey).(string); ok && username != "" {
			c.Set(CurrentUserKey, username)
			c.Request = c.Request.WithContext(observability.WithUsername(c.Request.Context(), username))
		}
		c.Next()
	}
}

// AuthRequired sends anonymous visitors to the login page with a flash.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == "" {
			session := sessions.Default(c)
			session.AddFlash(loginRequiredMessage, "error")
			_ = session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthRequired is AuthRequired for JSON endpoints.
func APIAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: loginRequiredMessage,
				Code:  models.CodeUnauthorized,
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in handle, or "" for anonymous requests.
func CurrentUser(c *gin.Context) string {
	return c.GetString(CurrentUserKey)
}
