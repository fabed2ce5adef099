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

type ImportHandler struct {
	service service.ImportService
}

func NewImportHandler(svc service.ImportService) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Validate - POST /v1/admin/products/import
// Dry run: parses and validates the file, returns either a preview of the
// records or the full list of row errors. Nothing is written.
func (h *ImportHandler) Validate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	preview, validationErrs, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"validationErrors": validationErrs,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"preview": preview.Products,
		"count":   preview.Count,
	})
}

// Execute - PUT /v1/admin/products/import
// Runs the reconciliation. Validation failures return 400 before any write;
// per-row mutation failures come back inside the result.
func (h *ImportHandler) Execute(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	result, validationErrs, err := h.service.Execute(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":          false,
			"validationErrors": validationErrs,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"results": result,
		"message": "importação concluída",
	})
}

func (h *ImportHandler) bind(c *gin.Context) (model.ImportRequest, bool) {
	var req model.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return req, false
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "csv_data is required")
		return req, false
	}
	return req, true
}

func (h *ImportHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrEmptyCSV) {
		response.BadRequest(c, "arquivo CSV vazio")
		return
	}
	log.Error().Err(err).Msg("import handler error")
	response.InternalServerError(c, "import failed")
}
