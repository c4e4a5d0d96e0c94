// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptoria-api/internal/application/blueprint"
	"scriptoria-api/internal/interfaces/http/dto"
	"scriptoria-api/pkg/logger"
)

const msgInvalidBody = "invalid request body"

// BlueprintHandler 电影蓝图生成
type BlueprintHandler struct {
	generator *blueprint.Generator
}

func NewBlueprintHandler(generator *blueprint.Generator) *BlueprintHandler {
	return &BlueprintHandler{generator: generator}
}

// Generate 生成 14 节电影蓝图
// @Summary 生成电影蓝图
// @Tags Blueprint
// @Accept json
// @Produce json
// @Param body body dto.GenerateBlueprintRequest true "电影概念"
// @Success 200 {object} dto.GenerateBlueprintResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/blueprints/generate [post]
func (h *BlueprintHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(ctx, "invalid blueprint request", "error", err.Error())
		dto.BadRequest(c, msgInvalidBody)
		return
	}

	out, err := h.generator.Generate(ctx, req.ToFormData())
	if err != nil {
		dto.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateBlueprintResponse{
		Blueprint:       out.Blueprint,
		MissingSections: out.Missing,
	})
}
