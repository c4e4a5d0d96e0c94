package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptoria-api/internal/application/export"
	"scriptoria-api/internal/interfaces/http/dto"
	"scriptoria-api/pkg/logger"
)

// ExportHandler 结果导出下载
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Blueprint 导出蓝图
// @Summary 导出蓝图
// @Tags Export
// @Accept json
// @Param format query string false "markdown|text|json"
// @Param body body dto.ExportBlueprintRequest true "蓝图"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/exports/blueprint [post]
func (h *ExportHandler) Blueprint(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	var req dto.ExportBlueprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, msgInvalidBody)
		return
	}
	if req.Blueprint == nil {
		dto.BadRequest(c, export.MsgNothingToExport)
		return
	}

	doc, err := export.Blueprint(*req.Blueprint, req.Title, format)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	h.write(c, doc)
}

// Continuation 导出续写
// @Summary 导出续写
// @Tags Export
// @Accept json
// @Param format query string false "markdown|text|json"
// @Param body body dto.ExportContinuationRequest true "续写文本"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/exports/continuation [post]
func (h *ExportHandler) Continuation(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		dto.AppError(c, err)
		return
	}

	var req dto.ExportContinuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, msgInvalidBody)
		return
	}

	doc, err := export.Continuation(req.Continuation, req.Title, format)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	h.write(c, doc)
}

func (h *ExportHandler) write(c *gin.Context, doc *export.Document) {
	logger.Info(c.Request.Context(), "export rendered",
		"filename", doc.Filename,
		"bytes", len(doc.Body),
	)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
