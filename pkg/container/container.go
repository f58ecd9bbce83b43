package container

import (
	"context"
	"fmt"
	"time"

	"bookreview-backend/internal/config"
	"bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/internal/infrastructure/queue"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/logger"

	bookHandler "bookreview-backend/internal/domains/book/handler"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	bookService "bookreview-backend/internal/domains/book/service"
	reviewHandler "bookreview-backend/internal/domains/review/handler"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	reviewService "bookreview-backend/internal/domains/review/service"
	userHandler "bookreview-backend/internal/domains/user/handler"
	userRepo "bookreview-backend/internal/domains/user/repository"
	userService "bookreview-backend/internal/domains/user/service"
)

// Container holds the application's dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services and
// handlers.
type Container struct {
	Config     *config.Config
	DB         *database.MongoDB
	Cache      *cache.RedisClient
	Queue      *queue.Client
	JWTManager *jwt.Manager

	UserRepo   userRepo.UserRepository
	BookRepo   bookRepo.BookRepository
	ReviewRepo reviewRepo.ReviewRepository

	UserService   userService.ServiceInterface
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface

	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.BookHandler
	ReviewHandler *reviewHandler.ReviewHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}
	ctx := context.Background()

	// Config first, everything else depends on it.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	// Infrastructure.
	c.DB = database.NewMongoDB(&cfg.Mongo)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := c.DB.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	c.Cache = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Repositories.
	c.UserRepo = userRepo.NewUserRepository(c.DB.Database)
	c.BookRepo = bookRepo.NewBookRepository(c.DB.Database)
	c.ReviewRepo = reviewRepo.NewReviewRepository(c.DB.Database)

	// Services.
	refreshTTL := time.Duration(cfg.JWT.RefreshTokenExpiry) * time.Hour
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, refreshTTL)
	c.BookService = bookService.NewBookService(c.BookRepo, c.ReviewRepo)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BookRepo, c.Queue)

	// Handlers.
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	return c, nil
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis client", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(ctx); err != nil {
			logger.Error("failed to close mongodb client", err)
		}
	}
}
