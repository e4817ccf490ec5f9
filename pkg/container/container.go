package container

import (
	"context"
	"fmt"
	"time"

	"bestiary-backend/internal/config"
	infraCache "bestiary-backend/internal/infrastructure/cache"
	"bestiary-backend/internal/infrastructure/database"
	"bestiary-backend/pkg/cache"
	"bestiary-backend/pkg/jwt"
	"bestiary-backend/pkg/logger"

	creatureHandler "bestiary-backend/internal/domains/creature/handler"
	creatureRepo "bestiary-backend/internal/domains/creature/repository"
	creatureService "bestiary-backend/internal/domains/creature/service"
	favouriteHandler "bestiary-backend/internal/domains/favourite/handler"
	favouriteRepo "bestiary-backend/internal/domains/favourite/repository"
	favouriteService "bestiary-backend/internal/domains/favourite/service"
	userHandler "bestiary-backend/internal/domains/user/handler"
	userRepo "bestiary-backend/internal/domains/user/repository"
	userService "bestiary-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Every component is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo      userRepo.Repository
	CreatureRepo  creatureRepo.Repository
	FavouriteRepo favouriteRepo.Repository

	UserService      userService.Service
	CreatureService  creatureService.Service
	FavouriteService favouriteService.Service

	UserHandler          *userHandler.UserHandler
	CreatureHandler      *creatureHandler.CreatureHandler
	AdminCreatureHandler *creatureHandler.AdminCreatureHandler
	FavouriteHandler     *favouriteHandler.FavouriteHandler
}

// NewContainer builds the full dependency graph. Initialization order
// matters: a repository built before its pool exists panics later, not here.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

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
	logger.Info("database connected", nil)

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// A cache outage is not fatal; repositories fall through to Postgres.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			logger.Error("redis connection failed (non-critical)", err)
		} else {
			logger.Info("redis connected", nil)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CreatureRepo = creatureRepo.NewPostgresRepository(pool, c.Cache)
	c.FavouriteRepo = favouriteRepo.NewPostgresRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	maxImageBytes := c.Config.Image.MaxBytes

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CreatureService = creatureService.NewCreatureService(c.CreatureRepo, c.FavouriteRepo, maxImageBytes)
	c.FavouriteService = favouriteService.NewFavouriteService(c.FavouriteRepo, maxImageBytes)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CreatureHandler = creatureHandler.NewCreatureHandler(c.CreatureService)
	c.AdminCreatureHandler = creatureHandler.NewAdminCreatureHandler(c.CreatureService)
	c.FavouriteHandler = favouriteHandler.NewFavouriteHandler(c.FavouriteService)
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		logger.Info("database connections closed", nil)
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("failed to close redis", err)
			} else {
				logger.Info("redis connections closed", nil)
			}
		}
	}
}
