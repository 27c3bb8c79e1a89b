package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookreview-backend/internal/config"
	bookHandler "bookreview-backend/internal/domains/book/handler"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	bookService "bookreview-backend/internal/domains/book/service"
	reviewHandler "bookreview-backend/internal/domains/review/handler"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	reviewService "bookreview-backend/internal/domains/review/service"
	userHandler "bookreview-backend/internal/domains/user/handler"
	userRepo "bookreview-backend/internal/domains/user/repository"
	userService "bookreview-backend/internal/domains/user/service"
	infraCache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/jwt"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
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

// NewContainer builds the whole graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI container...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// Redis backs login throttling only; a failed connection
		// degrades that feature instead of blocking startup.
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, c.JWTManager)

	// The review repository doubles as the catalog's rating and review
	// source; the user repository supplies public identities. The
	// service-side interfaces keep the domains decoupled.
	c.BookService = bookService.NewCatalogService(
		c.BookRepo,
		c.ReviewRepo,
		c.ReviewRepo,
		c.UserRepo,
	)

	c.ReviewService = reviewService.NewReviewService(
		c.ReviewRepo,
		c.BookRepo,
		c.UserRepo,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// Close releases infrastructure connections. Call on shutdown.
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}
}
