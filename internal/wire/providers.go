// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"scriptoria-api/internal/application/blueprint"
	"scriptoria-api/internal/application/continuation"
	"scriptoria-api/internal/config"
	"scriptoria-api/internal/infrastructure/llm"
	"scriptoria-api/internal/infrastructure/persistence/redis"
	"scriptoria-api/internal/interfaces/http/handler"
	"scriptoria-api/internal/interfaces/http/middleware"
	"scriptoria-api/internal/interfaces/http/router"
	workflowport "scriptoria-api/internal/workflow/port"
	"scriptoria-api/pkg/logger"
)

// LLMSet LLM 工厂与接口绑定
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(workflowport.ProviderChecker), new(*llm.EinoFactory)),
)

// RedisSet 限流所需的 Redis 依赖
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideRateLimiter,
)

// HandlerSet HTTP 处理器
var HandlerSet = wire.NewSet(
	ProvideBlueprintGenerator,
	ProvideContinuationGenerator,
	handler.NewBlueprintHandler,
	handler.NewContinuationHandler,
	handler.NewExportHandler,
	ProvideHealthHandler,
	ProvideUIHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// ProvideRedisClient 限流启用时连接 Redis，否则返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Security.RateLimit.Enabled || !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(ctx, &cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn(ctx, "failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供限流器；无 Redis 时返回 nil
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

func ProvideBlueprintGenerator(factory workflowport.ChatModelFactory, cfg *config.Config) *blueprint.Generator {
	return blueprint.NewGenerator(factory, cfg.LLM.DefaultProvider)
}

func ProvideContinuationGenerator(factory workflowport.ChatModelFactory, cfg *config.Config) *continuation.Generator {
	return continuation.NewGenerator(factory, cfg.LLM.DefaultProvider)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, checker workflowport.ProviderChecker, redisClient *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, checker, redisClient)
}

func ProvideUIHandler(cfg *config.Config) *handler.UIHandler {
	return handler.NewUIHandler(cfg.App.DisplayName)
}
