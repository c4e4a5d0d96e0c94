package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptoria-api/internal/application/continuation"
	"scriptoria-api/internal/interfaces/http/dto"
	"scriptoria-api/pkg/logger"
)

// ContinuationHandler 故事续写
type ContinuationHandler struct {
	generator *continuation.Generator
}

func NewContinuationHandler(generator *continuation.Generator) *ContinuationHandler {
	return &ContinuationHandler{generator: generator}
}

// Continue 续写已有故事，结果不分节
// @Summary 续写故事
// @Tags Story
// @Accept json
// @Produce json
// @Param body body dto.ContinueStoryRequest true "已有故事与方向"
// @Success 200 {object} dto.ContinueStoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/stories/continue [post]
func (h *ContinuationHandler) Continue(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ContinueStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(ctx, "invalid continuation request", "error", err.Error())
		dto.BadRequest(c, msgInvalidBody)
		return
	}

	res, err := h.generator.Generate(ctx, req.ToEntity())
	if err != nil {
		dto.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContinueStoryResponse{Continuation: res.Text})
}
