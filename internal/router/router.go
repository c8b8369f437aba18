package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/handlers"
	"github.com/fabiansimon/Frello/internal/middleware"
	"github.com/fabiansimon/Frello/internal/services"
)

// Deps holds everything the HTTP surface is built from.
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
	Log    *zap.Logger

	AuthService    *services.AuthService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
	CommentService *services.CommentService
	AIService      *services.AIService

	CORSOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	// The logger wraps Recovery so recovered panics are logged and counted as 500s.
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(gin.Recovery())

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Authenticate(deps.Tokens))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	projectHandler := handlers.NewProjectHandler(deps.ProjectService, deps.AIService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService, deps.CommentService)
	commentHandler := handlers.NewCommentHandler(deps.CommentService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		users := api.Group("/users", middleware.RequireAuth())
		{
			users.PATCH("/me", authHandler.UpdateCurrentUser)
		}

		projects := api.Group("/projects", middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)

			project := projects.Group("/:id", middleware.RequireUUIDParams("id"))
			{
				project.GET("", projectHandler.GetProject)
				project.DELETE("", projectHandler.DeleteProject)
				project.GET("/board", projectHandler.GetBoard)
				project.POST("/members", projectHandler.AddMember)
				project.DELETE("/members/:user_id", middleware.RequireUUIDParams("user_id"), projectHandler.RemoveMember)
				project.POST("/suggestions/assignee", projectHandler.SuggestAssignee)
				project.DELETE("/comments/:comment_id", middleware.RequireUUIDParams("comment_id"), commentHandler.RemoveComment)
			}
		}

		tasks := api.Group("/tasks", middleware.RequireAuth())
		{
			tasks.POST("", taskHandler.CreateTask)

			task := tasks.Group("/:id", middleware.RequireUUIDParams("id"))
			{
				task.PATCH("", taskHandler.UpdateTask)
				task.DELETE("", taskHandler.DeleteTask)
				task.GET("/comments", taskHandler.ListComments)
			}
		}

		comments := api.Group("/comments", middleware.RequireAuth())
		{
			comments.POST("", commentHandler.CreateComment)
		}
	}

	return r
}
