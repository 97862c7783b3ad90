package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-amortization-go/internal/cache"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/logging"
	"github.com/cloud-ru/mcp-amortization-go/internal/server"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
	"github.com/cloud-ru/mcp-amortization-go/internal/tracing"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запускает HTTP сервер инструментов",
	Long: `Запускает HTTP сервер с инструментами расчета кредита.

Маршруты:
  GET  /health
  GET  /metrics
  GET  /api/tools
  POST /api/tools/{name}
  POST /api/export/csv`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Порт (по умолчанию PORT или 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	scheduleCache, closeCache := newScheduleCache(ctx, cfg)
	defer closeCache()

	registry := tools.NewRegistry(cfg, tracing.Tracer, scheduleCache)
	log.Info().Strs("tools", registry.Names()).Int("port", cfg.Port).Msg("amortization server configured")

	return server.New(cfg, registry).Run(ctx)
}

// newScheduleCache выбирает Redis, если он задан и доступен, иначе кэш в памяти
func newScheduleCache(ctx context.Context, cfg *config.Config) (cache.ScheduleCache, func()) {
	memory := func() (cache.ScheduleCache, func()) {
		log.Info().Int("max_items", cfg.CacheMaxItems).Dur("ttl", cfg.CacheTTL).Msg("using in-memory schedule cache")
		return cache.NewMemoryCache(cfg.CacheMaxItems, cfg.CacheTTL), func() {}
	}

	if !cfg.UseRedis() {
		return memory()
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := redisCache.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, falling back to memory cache")
		_ = redisCache.Close()
		return memory()
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis schedule cache")
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

// loadConfig загружает конфигурацию и настраивает логгер
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.Setup(cfg.LogLevel, os.Stderr)
	return cfg, nil
}
