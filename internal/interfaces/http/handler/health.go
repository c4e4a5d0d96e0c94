package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scriptoria-api/internal/infrastructure/persistence/redis"
	"scriptoria-api/internal/interfaces/http/dto"
	workflowport "scriptoria-api/internal/workflow/port"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	llm     workflowport.ProviderChecker
	// redis 未启用限流时为 nil
	redis *redis.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, llm workflowport.ProviderChecker, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		version: version,
		llm:     llm,
		redis:   redisClient,
	}
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口：网关密钥已配置，启用时 Redis 可达
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"llm_gateway": {Status: "unknown"},
		"redis":       {Status: "disabled"},
	}
	ready := true

	// LLM 网关（必需）
	if h.llm == nil {
		checks["llm_gateway"].Status = "missing"
		checks["llm_gateway"].Error = "llm factory not configured"
		ready = false
	} else if err := h.llm.CheckProvider(""); err != nil {
		checks["llm_gateway"].Status = "error"
		checks["llm_gateway"].Error = err.Error()
		ready = false
	} else {
		checks["llm_gateway"].Status = "ok"
	}

	// Redis（仅限流启用时检查）
	if h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
