package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/config"
	categoryHandler "storefront-admin/internal/domains/category/handler"
	categoryRepo "storefront-admin/internal/domains/category/repository"
	categoryService "storefront-admin/internal/domains/category/service"
	"storefront-admin/internal/domains/dashboard"
	productHandler "storefront-admin/internal/domains/product/handler"
	productRepo "storefront-admin/internal/domains/product/repository"
	productService "storefront-admin/internal/domains/product/service"
	infraCache "storefront-admin/internal/infrastructure/cache"
	"storefront-admin/internal/infrastructure/storage"
	"storefront-admin/pkg/cache"
	"storefront-admin/pkg/database"
	"storefront-admin/pkg/jwt"
)

// Container is the root of the dependency graph: config, infrastructure,
// repositories, services and handlers, built once at startup.
type Container struct {
	Config     *config.Config
	Pool       *pgxpool.Pool
	Cache      cache.Cache
	Media      *storage.MediaStorage
	JWTManager *jwt.Manager

	ProductRepo  productRepo.Repository
	CategoryRepo categoryRepo.Repository

	ProductService productService.Service
	ImportService  productService.ImportService
	ExportService  productService.ExportService
	BulkService    productService.BulkService
	CategorySvc    categoryService.Service
	DashboardSvc   dashboard.Service

	ProductHandler   *productHandler.ProductHandler
	ImportHandler    *productHandler.ImportHandler
	ExportHandler    *productHandler.ExportHandler
	BulkHandler      *productHandler.BulkHandler
	VariantHandler   *productHandler.VariantHandler
	RelatedHandler   *productHandler.RelatedHandler
	CategoryHandler  *categoryHandler.CategoryHandler
	DashboardHandler *dashboard.Handler

	redis *infraCache.RedisCache
}

// NewContainer builds the whole graph in dependency order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.Pool = pool
	log.Info().Str("host", cfg.Database.Host).Msg("connected to postgres")

	redisCache := infraCache.NewRedisCache(cfg.Redis)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redis = redisCache
	c.Cache = redisCache
	log.Info().Str("addr", cfg.Redis.Host).Msg("connected to redis")

	media, err := storage.NewMediaStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init media storage: %w", err)
	}
	c.Media = media

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Repositories
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	dashboardRepo := dashboard.NewPostgresRepository(pool)

	// Services
	processor := storage.NewImageProcessor()
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache, media, processor)
	c.ImportService = productService.NewImportService(c.ProductRepo, c.Cache)
	c.ExportService = productService.NewExportService(c.ProductRepo)
	c.BulkService = productService.NewBulkService(c.ProductRepo, c.Cache, media)
	c.CategorySvc = categoryService.NewCategoryService(c.CategoryRepo)
	c.DashboardSvc = dashboard.NewService(dashboardRepo, c.Cache)

	// Handlers
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.ImportHandler = productHandler.NewImportHandler(c.ImportService)
	c.ExportHandler = productHandler.NewExportHandler(c.ExportService)
	c.BulkHandler = productHandler.NewBulkHandler(c.BulkService)
	c.VariantHandler = productHandler.NewVariantHandler(c.ProductService)
	c.RelatedHandler = productHandler.NewRelatedHandler(c.ProductService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategorySvc)
	c.DashboardHandler = dashboard.NewHandler(c.DashboardSvc)

	return c, nil
}

// Close releases infrastructure connections.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
