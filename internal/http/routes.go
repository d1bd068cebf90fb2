package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/socialapp/internal/config"
	"github.com/sujalbistaa/socialapp/internal/feed"
	"github.com/sujalbistaa/socialapp/internal/render"
	"github.com/sujalbistaa/socialapp/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, cfg config.Config, ctrl *feed.Controller, hub *ws.Hub) {

	// --- Dependencies ---
	env := &Env{Feed: ctrl, Actions: ctrl}

	// --- Middleware ---

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.CORSOrigin != "*",
	}))

	router.SetHTMLTemplate(render.Templates())

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(cfg.SubmitRPS), cfg.SubmitBurst)
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			limiter.Forget(10 * time.Minute)
		}
	}()

	// --- Surface ---

	router.GET("/", env.GetPage)
	router.POST("/nav/:view", env.Navigate)

	composer := router.Group("/composer")
	{
		composer.POST("/input", env.UpdateDraft)
		composer.POST("/cancel", env.CancelComposer)
		composer.POST("/submit", RateLimitMiddleware(limiter), env.SubmitPost)
	}

	router.POST("/keys", RateLimitMiddleware(limiter), env.PressKey)

	posts := router.Group("/posts/:id")
	{
		posts.POST("/like", env.LikePost)
		posts.POST("/comment", env.CommentPost)
		posts.POST("/share", env.SharePost)
	}

	router.GET("/api/state", env.GetState)

	// --- WebSocket Route ---

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c.Writer, c.Request)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
