package router

import (
	"net/http"

	"echoes/internal/config"
	"echoes/internal/handlers"
	"echoes/internal/middleware"
	"echoes/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const sessionName = "echoes_session"

// New builds the engine with sessions, templates, static files and routes.
func New(cfg *config.Config, gdb *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(), middleware.Metrics())
	if origins := cfg.Origins(); len(origins) > 0 {
		r.Use(middleware.CORS(origins))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.LoadUser(), middleware.RequestLogger())

	r.HTMLRender = LoadTemplates(cfg.TemplatesDir)
	r.Static("/static", cfg.StaticDir)

	RegisterRoutes(r, services.New(gdb), gdb)
	return r
}

func RegisterRoutes(r *gin.Engine, svc *services.Services, gdb *gorm.DB) {
	// Handlers
	authHandler := handlers.NewAuthHandler(svc.Accounts)
	postHandler := handlers.NewPostHandler(svc.Feed, svc.Engagement)
	userHandler := handlers.NewUserHandler(svc.Accounts, svc.Feed, svc.Graph)
	apiHandler := handlers.NewAPIHandler(svc.Engagement)
	healthHandler := handlers.NewHealthHandler(gdb)

	// Public Routes
	r.GET("/", postHandler.Index)
	r.GET("/stories", postHandler.Stories)
	r.GET("/quotes", postHandler.Quotes)
	r.GET("/profile/:username", userHandler.Profile)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/home", postHandler.Home)
		authorized.POST("/create_post", postHandler.CreatePost)
		authorized.POST("/post_comment", postHandler.CreateComment)
		authorized.GET("/share/:id", postHandler.Share)
		authorized.GET("/follow/:username", userHandler.Follow)
		authorized.GET("/settings", userHandler.ShowSettings)
		authorized.POST("/settings", userHandler.UpdateSettings)
	}

	// AJAX
	api := r.Group("/")
	api.Use(middleware.APIAuthRequired())
	{
		api.POST("/like/:id", apiHandler.ToggleLike)
		api.POST("/api/comment", apiHandler.CreateComment)
	}

	// Ops
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found.")
	})
}
