package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/studiobooking/internal/service/export"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	service export.ExportUseCase
}

func NewExportHandler(service export.ExportUseCase) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.export)
}

func (h *ExportHandler) export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	result, err := h.service.Export(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(result.CSV))
}
