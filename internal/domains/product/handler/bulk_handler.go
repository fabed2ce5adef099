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

type BulkHandler struct {
	service service.BulkService
}

func NewBulkHandler(svc service.BulkService) *BulkHandler {
	return &BulkHandler{service: svc}
}

// Apply - POST /v1/admin/products/bulk
func (h *BulkHandler) Apply(c *gin.Context) {
	var req model.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid bulk request", err)
		return
	}

	result, err := h.service.Apply(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProductsInOrders):
			response.Conflict(c, "alguns produtos possuem pedidos associados")
		case errors.Is(err, model.ErrProductsInCarts):
			response.Conflict(c, "alguns produtos estão em carrinhos")
		default:
			log.Error().Err(err).Str("action", req.Action).Msg("bulk action failed")
			response.InternalServerError(c, "bulk action failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"action":  result.Action,
		"count":   result.Count,
	})
}
