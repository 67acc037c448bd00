package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"echoes/internal/middleware"
	"echoes/internal/models"
	"echoes/internal/observability"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash categories, rendered as CSS classes.
const (
	flashError   = "error"
	flashSuccess = "success"
	flashInfo    = "info"
)

type Flash struct {
	Category string
	Message  string
}

// Render injects the signed-in handle, pending flashes and the current path.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["CurrentUser"] = middleware.CurrentUser(c)
	obj["Flashes"] = popFlashes(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": http.StatusText(code), "Error": message})
}

func popFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	var out []Flash
	for _, category := range []string{flashError, flashSuccess, flashInfo} {
		for _, f := range session.Flashes(category) {
			if msg, ok := f.(string); ok {
				out = append(out, Flash{Category: category, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		_ = session.Save()
	}
	return out
}

func addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	_ = session.Save()
}

func redirectWithFlash(c *gin.Context, path, category, message string) {
	addFlash(c, category, message)
	c.Redirect(http.StatusFound, path)
}

// failRedirect reports err as a flash and redirects to path.
func failRedirect(c *gin.Context, err error, path string) {
	logIfInternal(c, err)
	redirectWithFlash(c, path, flashError, models.UserMessage(err))
}

// failJSON reports err as {"error": ...} with the status matching its code.
func failJSON(c *gin.Context, err error) {
	logIfInternal(c, err)
	c.AbortWithStatusJSON(statusFor(err), models.ErrorResponse{
		Error: models.UserMessage(err),
		Code:  models.ErrorCode(err),
	})
}

func logIfInternal(c *gin.Context, err error) {
	if models.ErrorCode(err) == models.CodeInternal {
		_ = c.Error(err)
		observability.Logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path), slog.Any("error", err))
	}
}

func statusFor(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeValidation:
		return http.StatusBadRequest
	case models.CodeConflict:
		return http.StatusConflict
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeAuthFailure, models.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// backPath is the local page the request came from, or fallback.
func backPath(c *gin.Context, fallback string) string {
	ref := c.Request.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return u.RequestURI()
}

func profilePath(handle string) string {
	return "/profile/" + url.PathEscape(handle)
}
