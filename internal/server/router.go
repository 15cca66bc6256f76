// Package server assembles the gin engine and runs the HTTP server.
package server

import (
	"net/http"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/handler"
	"warbler/backend/internal/middleware"
	"warbler/backend/internal/session"
	"warbler/backend/internal/templates"

	_ "warbler/backend/docs" // registers the swagger docs

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route of the application on a fresh engine.
func NewRouter(store session.Store) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery(), middleware.GinZap(), middleware.PrometheusMiddleware())

	router.StaticFS("/static", http.FS(templates.Static()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.OptionalAuthMiddleware())
	{
		apiV1.POST("/auth/token", handler.IssueToken)

		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("", handler.APISearchUsers)
			userRoutes.GET("/:id", handler.APIGetUser)
			userRoutes.GET("/:id/messages", handler.APIUserMessages)
		}

		apiV1.GET("/messages/:id", handler.APIGetMessage)
	}

	// HTML routes
	web := router.Group("")
	web.Use(middleware.NoCache(), session.Middleware(store), auth.CurrentUserMiddleware())
	{
		loginRequired := auth.LoginRequired("/")

		web.GET("/", handler.Home)
		web.GET("/signup", handler.ShowSignup)
		web.POST("/signup", handler.Signup)
		web.GET("/login", handler.ShowLogin)
		web.POST("/login", handler.Login)
		web.GET("/logout", handler.Logout)

		web.GET("/stream", auth.AuthMiddleware(), handler.Stream)

		users := web.Group("/users")
		{
			users.GET("", handler.ListUsers)
			users.GET("/:id", handler.ShowUser)
			users.GET("/:id/following", loginRequired, handler.ShowFollowing)
			users.GET("/:id/followers", loginRequired, handler.ShowFollowers)
			users.GET("/:id/likes", loginRequired, handler.ShowUserLikes)
			users.POST("/follow/:id", loginRequired, handler.FollowUser)
			users.POST("/stop-following/:id", loginRequired, handler.StopFollowing)
			users.GET("/profile", auth.LoginRequired("/login"), handler.EditProfile)
			users.POST("/profile", auth.LoginRequired("/login"), handler.UpdateProfile)
			users.POST("/delete", loginRequired, handler.DeleteUser)
		}

		messages := web.Group("/messages")
		{
			messages.GET("/new", loginRequired, handler.NewMessage)
			messages.POST("/new", loginRequired, handler.CreateMessage)
			messages.GET("/liked", loginRequired, handler.LikedMessages)
			messages.GET("/:id", handler.ShowMessage)
			messages.POST("/:id/delete", loginRequired, handler.DeleteMessage)
			messages.POST("/:id/add_like", loginRequired, handler.AddLike)
			messages.POST("/:id/remove_like", loginRequired, handler.RemoveLike)
		}
	}

	router.NoRoute(middleware.NoCache(), session.Middleware(store), auth.CurrentUserMiddleware(), handler.NotFound)

	return router, nil
}
