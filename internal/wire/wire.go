//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"scriptoria-api/internal/config"
	"scriptoria-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		LLMSet,
		RedisSet,
		HandlerSet,
		router.New,
	)
	return nil, nil, nil
}
