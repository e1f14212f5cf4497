package api

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"engagement-service/config"
	"engagement-service/events"
	"engagement-service/handler"
	"engagement-service/middleware"
	"engagement-service/service"
	"engagement-service/store"
)

// NewRouter wires every handler onto a gin engine. publisher may be nil when
// NATS is unavailable.
func NewRouter(cfg *config.Config, db *mongo.Database, publisher *events.Publisher) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.PrometheusMiddleware("engagement-service"))

	articleStore := store.NewArticleStore(db)
	todoStore := store.NewTodoStore(db)
	quoteStore := store.NewQuoteStore(db)
	userStore := store.NewUserStore(db)

	// A nil *Publisher must stay a nil interface so the service skips
	// publishing instead of calling through a typed nil.
	engagement := service.NewEngagementService(articleStore, nil)
	if publisher != nil {
		engagement = service.NewEngagementService(articleStore, publisher)
	}

	articlesHandler := handler.NewArticlesHandler(articleStore, engagement)
	streamHandler := handler.NewStreamHandler(articleStore)
	todosHandler := handler.NewTodosHandler(todoStore)
	quotesHandler := handler.NewQuotesHandler(quoteStore)
	usersHandler := handler.NewUsersHandler(userStore)
	authHandler := handler.NewAuthHandler(userStore, cfg.JWTSecret, cfg.TokenTTL)

	// Health check routes
	router.GET("/health", healthCheck)
	router.GET("/ready", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/signup", authHandler.SignUp)
		v1.POST("/auth/login", authHandler.Login)

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(cfg.JWTSecret))
		{
			authed.GET("/me", usersHandler.Me)

			authed.GET("/articles", articlesHandler.List)
			authed.GET("/articles/liked", articlesHandler.ListLiked)
			authed.GET("/articles/stream", streamHandler.StreamFeed)
			authed.POST("/articles/:id/like", articlesHandler.ToggleLike)
			authed.POST("/articles/:id/view", articlesHandler.RecordView)

			authed.GET("/todos", todosHandler.List)
			authed.POST("/todos", todosHandler.Create)
			authed.PUT("/todos/:id", todosHandler.SetCompleted)
			authed.DELETE("/todos/:id", todosHandler.Delete)

			authed.GET("/quotes", quotesHandler.List)
			authed.POST("/quotes", quotesHandler.Create)
		}
	}

	return router
}

// StartServer blocks serving the API.
func StartServer(cfg *config.Config, db *mongo.Database, publisher *events.Publisher) {
	router := NewRouter(cfg, db, publisher)

	log.Printf("Engagement API is running at %s", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "engagement-service", "timestamp": time.Now()})
}
