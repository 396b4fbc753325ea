package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/config"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/debuglog"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/memory"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/model"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/provider"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/usage"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/validation"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/agent"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/cache"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/debugrepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/memoryrepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/modelrepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/presetrepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/providerrepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/database/repository/usagerepo"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/handlers"
)

const appVersion = "1.0.0"

// Application bundles everything main needs to run the admin console.
type Application struct {
	httpServer *httpserver.HTTPServer
	config     *config.Config
}

// Start serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Start() error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.HTTPPort),
		Handler:      a.httpServer.Engine(),
		ReadTimeout:  a.config.RequestTimeout,
		WriteTimeout: a.config.TestRunTimeout + a.config.RequestTimeout,
		IdleTimeout:  a.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", a.config.HTTPPort).Msg("synapse-admin listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func provideDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := database.RunMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
			return nil, err
		}
		log.Info().Msg("Database migrations applied")
	}

	return db, nil
}

func provideCacheBackend(cfg *config.Config) (cache.Cache, error) {
	if cfg.CacheType == "memory" {
		log.Info().Msg("Using in-process memory cache")
		return cache.NewMemoryCache(), nil
	}
	return cache.NewRedisCache(cfg.RedisURL)
}

// provideLocker returns the redsync-backed lease when the cache is Redis and
// a no-op otherwise: a single-process deployment has nothing to coordinate
// with.
func provideLocker(backend cache.Cache) validation.Locker {
	if redisCache, ok := backend.(*cache.RedisCache); ok {
		return redisCache
	}
	return validation.NoopLocker{}
}

func provideRegistry(cfg *config.Config) *model.Registry {
	return model.NewRegistry(cfg.CapabilitiesFile)
}

func provideProviderService(repo provider.Repository, cfg *config.Config) *provider.Service {
	return provider.NewService(repo, cfg.ProviderSecret)
}

func provideValidityChecker(providers *provider.Service, catalog *model.CatalogService) *preset.ValidityChecker {
	return preset.NewValidityChecker(providers, catalog)
}

func provideRunner(
	slots *cache.SlotStore,
	locker validation.Locker,
	validator *agent.PresetValidator,
	presets *preset.Service,
	checker *preset.ValidityChecker,
	cfg *config.Config,
) *validation.Runner {
	return validation.NewRunner(slots, locker, validator, presets, checker, cfg.TestSlotTTL, cfg.TestRunTimeout)
}

func provideSystemHandler(
	cfg *config.Config,
	presetRepo preset.Repository,
	providerRepo provider.Repository,
	memories memory.Repository,
	usageRepo usage.Repository,
	debugRepo debuglog.Repository,
) *handlers.SystemHandler {
	return handlers.NewSystemHandler(cfg, appVersion, presetRepo, providerRepo, memories, usageRepo, debugRepo)
}

var applicationSet = wire.NewSet(
	config.Load,
	provideDatabase,
	provideCacheBackend,
	provideLocker,
	provideRegistry,

	// Repositories
	presetrepo.NewRepository,
	wire.Bind(new(preset.Repository), new(*presetrepo.Repository)),
	providerrepo.NewRepository,
	wire.Bind(new(provider.Repository), new(*providerrepo.Repository)),
	modelrepo.NewRepository,
	wire.Bind(new(model.OverrideRepository), new(*modelrepo.Repository)),
	usagerepo.NewRepository,
	wire.Bind(new(usage.Repository), new(*usagerepo.Repository)),
	memoryrepo.NewRepository,
	wire.Bind(new(memory.Repository), new(*memoryrepo.Repository)),
	debugrepo.NewRepository,
	wire.Bind(new(debuglog.Repository), new(*debugrepo.Repository)),

	// Cache stores
	cache.NewSlotStore,
	cache.NewTraceStore,
	wire.Bind(new(debuglog.TraceStore), new(*cache.TraceStore)),

	// Domain services
	model.NewCatalogService,
	provideProviderService,
	provideValidityChecker,
	preset.NewService,
	agent.NewPresetValidator,
	provideRunner,

	// HTTP layer
	handlers.NewPresetHandler,
	handlers.NewModelHandler,
	handlers.NewProviderHandler,
	handlers.NewAnalyticsHandler,
	handlers.NewMemoryHandler,
	handlers.NewDebugHandler,
	provideSystemHandler,
	httpserver.NewHTTPServer,

	wire.Struct(new(Application), "*"),
)
