// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strconv"
	"time"

	"scriptoria-api/pkg/logger"
	"scriptoria-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics Prometheus 指标采集中间件，同时输出访问日志
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// 未匹配路由统一记为 unmatched
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		if reqSize := float64(c.Request.ContentLength); reqSize > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(reqSize)
		}

		code := c.Writer.Status()
		duration := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
		if respSize := float64(c.Writer.Size()); respSize > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(respSize)
		}

		logger.Debug(c.Request.Context(), "http request",
			"method", method,
			"path", path,
			"status", code,
			"duration_ms", duration.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
