package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/service"
	"storefront-admin/internal/shared/response"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Export - GET /v1/admin/products/export
// Streams the catalog as a CSV attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	var req model.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	file, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUnsupportedFormat):
			response.BadRequest(c, "only csv format is supported")
		case errors.Is(err, model.ErrNoProductsToExport):
			response.NotFound(c, "nenhum produto para exportar")
		default:
			log.Error().Err(err).Msg("export failed")
			response.InternalServerError(c, "export failed")
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
