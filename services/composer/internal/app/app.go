package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"post-composer/pkg/cache"
	"post-composer/pkg/config"
	"post-composer/pkg/database"
	"post-composer/pkg/jwt"
	"post-composer/pkg/logger"
	"post-composer/pkg/middleware"
	"post-composer/pkg/queue"
	"post-composer/pkg/s3"
	composerHTTP "post-composer/services/composer/internal/controller/http"
	draftCache "post-composer/services/composer/internal/repo/cache"
	"post-composer/services/composer/internal/repo/persistent"
	"post-composer/services/composer/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "post-composer/services/composer/docs" // Swagger docs
)

const uploadPath = "/api/v1/composer/uploads"

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	mongoClient *mongo.Client
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	app := &App{
		cfg:        cfg,
		log:        log,
		jwtService: jwt.NewService(cfg.JWTSecret),
	}

	switch cfg.PostStore {
	case config.PostStoreMongo:
		mongoClient, err := database.NewMongoClient(cfg)
		if err != nil {
			log.Error("Failed to connect to MongoDB: %v", err)
			return nil, err
		}
		app.mongoClient = mongoClient
	case config.PostStorePostgres:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			return nil, err
		}
		app.db = db
	default:
		return nil, fmt.Errorf("unknown POST_STORE %q", cfg.PostStore)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Drafts and rate limiting both live in Redis
		log.Error("Failed to connect to redis: %v", err)
		app.closeStores()
		return nil, err
	}
	app.redisClient = redisClient

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		app.closeStores()
		return nil, err
	}
	app.s3Client = s3Client

	if cfg.QueueEnabled() {
		queueClient, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		} else {
			app.queueClient = queueClient
		}
	}

	return app, nil
}

func (a *App) postListRepository() persistent.PostListRepository {
	if a.mongoClient != nil {
		return persistent.NewMongoPostListRepository(a.mongoClient.Database(a.cfg.MongoDatabase))
	}
	return persistent.NewPostgresPostListRepository(a.db)
}

func (a *App) Run() error {
	// Initialize repositories
	postListRepo := a.postListRepository()
	draftRepo := draftCache.NewRedisDraftRepository(a.redisClient, time.Duration(a.cfg.DraftTTLHours)*time.Hour)

	// The use case only sees a publisher when one is connected
	var publisher usecase.EventPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	// Initialize use cases
	composerUseCase := usecase.NewComposerUseCase(
		postListRepo,
		draftRepo,
		a.s3Client,
		publisher,
		a.log,
		usecase.Options{
			UploadPrefix: a.cfg.S3UploadPrefix,
			UploadURL:    uploadPath,
		},
	)

	// Initialize HTTP handlers
	composerHandler := composerHTTP.NewComposerHandler(composerUseCase, a.log)

	rateLimit := middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute)
	r := newRouter(composerHandler, a.jwtService, a.cfg.CORSOrigins, rateLimit)

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Composer service starting on port %s (post store: %s)", a.cfg.ServerPort, a.cfg.PostStore)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down composer service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before the stores go away
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.closeStores()

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Composer service exited")
	return nil
}

func (a *App) closeStores() {
	if a.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Error("Error closing MongoDB: %v", err)
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log.Error("Error closing database: %v", err)
			}
		}
	}
}

func newRouter(composerHandler *composerHTTP.ComposerHandler, jwtService *jwt.Service, corsOrigins []string, rateLimit gin.HandlerFunc) *gin.Engine {
	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware())
	api.Use(middleware.IdentityMiddleware(jwtService))

	composer := api.Group("/composer")
	{
		// Draft edits arrive once per editor change event and are not rate limited
		composer.GET("/draft", composerHandler.GetDraft)
		composer.PUT("/draft/title", composerHandler.UpdateTitle)
		composer.PUT("/draft/content", composerHandler.UpdateContent)
		composer.PUT("/draft/media", composerHandler.SelectMedia)
		composer.POST("/draft/mode", composerHandler.ToggleMode)
		composer.GET("/preview", composerHandler.Preview)
		composer.GET("/editor-config", composerHandler.EditorConfig)

		composer.POST("/uploads", middleware.AuthMiddleware(jwtService), rateLimit, composerHandler.UploadImage)
		composer.POST("/submit", rateLimit, composerHandler.Submit)
	}

	return r
}
