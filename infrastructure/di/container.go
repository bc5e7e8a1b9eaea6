// Package di wires the application together: one provider function per
// dependency, composed by InitializeContainer.
package di

import (
	"context"
	"fmt"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/application/services"
	authverify "github.com/RodCacioli/Authos-v2/infrastructure/auth"
	"github.com/RodCacioli/Authos-v2/infrastructure/config"
	"github.com/RodCacioli/Authos-v2/infrastructure/llm"
	"github.com/RodCacioli/Authos-v2/infrastructure/persistence/localstore"
	supastore "github.com/RodCacioli/Authos-v2/infrastructure/persistence/supabase"
	"github.com/RodCacioli/Authos-v2/infrastructure/scheduler"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Local    ports.LocalStore
	Remote   ports.RecordStore
	Verifier ports.SessionVerifier
	Metrics  *observability.Collector
	Tracing  *observability.TracerProvider
	Settings *config.SettingsWatcher

	Profiles   *services.ProfileService
	Memories   *services.MemoryService
	Products   *services.ProductService
	Drafts     *services.DraftService
	Chat       *services.ChatService
	Generation *services.GenerationService

	Publisher *scheduler.Publisher

	localStore *localstore.Store
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideSupabaseClient creates the Supabase client, or nil when the hosted
// backend is not configured. The application degrades to local-only.
func ProvideSupabaseClient(cfg *config.Config, logger *zap.Logger) (*supa.Client, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
		logger.Warn("hosted backend not configured, running local-only")
		return nil, nil
	}
	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return client, nil
}

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	client, err := ProvideSupabaseClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	var remote ports.RecordStore
	if client != nil {
		remote = supastore.NewRecordStore(client, logger)
	}

	var tracing *observability.TracerProvider
	if cfg.EnableTracing {
		tp, err := observability.InitTracing("authos", cfg.Environment, "localhost:4317")
		if err != nil {
			logger.Warn("tracing init failed, continuing without", zap.Error(err))
		} else {
			tracing = tp
			if remote != nil {
				remote = observability.TraceRecordStore(remote, tp.Tracer())
			}
		}
	}

	verifier := authverify.NewVerifier(cfg.SupabaseJWTSecret, client, logger)

	generator, err := llm.New(llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	metrics := observability.NewCollector("authos")

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Local:      local,
		Remote:     remote,
		Verifier:   verifier,
		Metrics:    metrics,
		Tracing:    tracing,
		Profiles:   services.NewProfileService(local, remote, logger),
		Memories:   services.NewMemoryService(local, remote, logger),
		Products:   services.NewProductService(local, remote, logger),
		Drafts:     services.NewDraftService(local, remote, logger),
		Chat:       services.NewChatService(local, logger),
		Generation: services.NewGenerationService(generator, logger),
		localStore: local,
	}

	c.Profiles.SetMetrics(metrics)
	c.Memories.SetMetrics(metrics)
	c.Products.SetMetrics(metrics)
	c.Drafts.SetMetrics(metrics)

	if cfg.SettingsPath != "" {
		watcher, err := config.NewSettingsWatcher(cfg.SettingsPath, logger)
		if err != nil {
			logger.Warn("settings watcher unavailable, using defaults", zap.Error(err))
		} else {
			c.Settings = watcher
			watcher.Start()
			c.Generation.SetLimitsProvider(func() services.GenerationLimits {
				s := watcher.Current()
				return services.GenerationLimits{
					FocusMemoryCap: s.Generation.FocusMemoryCap,
					ChatMemoryCap:  s.Generation.ChatMemoryCap,
				}
			})
		}
	}

	c.Publisher = scheduler.NewPublisher(c.Drafts, logger, func() bool {
		if c.Settings == nil {
			return true
		}
		return c.Settings.Current().Publishing.Enabled
	})

	return c, nil
}

// Shutdown releases container resources.
func (c *Container) Shutdown(ctx context.Context) {
	if c.Publisher != nil {
		c.Publisher.Stop()
	}
	if c.Settings != nil {
		c.Settings.Stop()
	}
	if c.Tracing != nil {
		if err := c.Tracing.Shutdown(ctx); err != nil {
			c.Logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}
	if c.localStore != nil {
		if err := c.localStore.Close(); err != nil {
			c.Logger.Warn("local store close failed", zap.Error(err))
		}
	}
}
