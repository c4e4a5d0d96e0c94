package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h *Handlers) {
	// 电影蓝图
	blueprints := v1.Group("/blueprints")
	{
		blueprints.POST("/generate", h.Blueprint.Generate)
	}

	// 故事续写
	stories := v1.Group("/stories")
	{
		stories.POST("/continue", h.Continuation.Continue)
	}

	// 导出下载
	exports := v1.Group("/exports")
	{
		exports.POST("/blueprint", h.Export.Blueprint)
		exports.POST("/continuation", h.Export.Continuation)
	}
}

// RegisterFunctionRoutes 注册 generate-blueprint / continue-story 函数路径
func RegisterFunctionRoutes(fn *gin.RouterGroup, h *Handlers) {
	fn.POST("/generate-blueprint", h.Blueprint.Generate)
	fn.POST("/continue-story", h.Continuation.Continue)
}
