package main

import (
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	rediscache "github.com/studysnap/aicore/internal/cache/redis"
	"github.com/studysnap/aicore/internal/config"
	"github.com/studysnap/aicore/internal/domain"
	"github.com/studysnap/aicore/internal/http"
	"github.com/studysnap/aicore/internal/http/middleware"
	"github.com/studysnap/aicore/internal/observability"
	"github.com/studysnap/aicore/internal/provider/cloud"
	"github.com/studysnap/aicore/internal/provider/local"
	"github.com/studysnap/aicore/internal/settings"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(_ *zap.Logger, server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Settings
	if err := container.Provide(func(defaults *config.DefaultsConfig) domain.Settings {
		return settings.NewStore(settings.Defaults{
			Preference:  defaults.Preference,
			APIKey:      defaults.APIKey,
			TextModel:   defaults.TextModel,
			VisionModel: defaults.VisionModel,
		})
	}); err != nil {
		log.Fatalf("Failed to provide settings store: %v", err)
	}

	// Providers
	if err := container.Provide(func(cfg *local.Config) domain.LocalClient {
		return local.NewClient(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide local client: %v", err)
	}
	if err := container.Provide(func(cfg *cloud.Config, s domain.Settings) domain.CloudClient {
		return cloud.NewClient(cfg, s)
	}); err != nil {
		log.Fatalf("Failed to provide cloud client: %v", err)
	}

	// Completion cache (disabled when no Redis address is configured)
	if err := container.Provide(func(cfg *config.CacheConfig) domain.CompletionCache {
		if cfg.RedisAddr == "" {
			return nil
		}
		return rediscache.NewCache(goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr}))
	}); err != nil {
		log.Fatalf("Failed to provide completion cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewNoticeBoard); err != nil {
		log.Fatalf("Failed to provide notice board: %v", err)
	}
	if err := container.Provide(domain.NewSelector); err != nil {
		log.Fatalf("Failed to provide provider selector: %v", err)
	}
	if err := container.Provide(func(
		selector *domain.Selector,
		cloudClient domain.CloudClient,
		localClient domain.LocalClient,
		s domain.Settings,
		notices *domain.NoticeBoard,
		cache domain.CompletionCache,
		cacheCfg *config.CacheConfig,
	) *domain.Orchestrator {
		ttl := time.Duration(cacheCfg.TTLSeconds) * time.Second
		return domain.NewOrchestrator(selector, cloudClient, localClient, s, notices, cache, ttl)
	}); err != nil {
		log.Fatalf("Failed to provide orchestrator: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(func(o *domain.Orchestrator, s domain.Settings) *http.Handler {
		return http.NewHandler(o, s)
	}); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
