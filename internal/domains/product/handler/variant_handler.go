package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/service"
	"storefront-admin/internal/shared/response"
)

type VariantHandler struct {
	service service.Service
}

func NewVariantHandler(svc service.Service) *VariantHandler {
	return &VariantHandler{service: svc}
}

// List - GET /v1/admin/products/:id/variants
func (h *VariantHandler) List(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	variants, err := h.service.ListVariants(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, variants)
}

// Create - POST /v1/admin/products/:id/variants
func (h *VariantHandler) Create(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	v, err := h.service.CreateVariant(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v)
}

// Update - PUT /v1/admin/products/:id/variants/:variantId
func (h *VariantHandler) Update(c *gin.Context) {
	variantID, ok := pathUUID(c, "variantId")
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.service.UpdateVariant(c.Request.Context(), variantID, req); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// Delete - DELETE /v1/admin/products/:id/variants/:variantId
func (h *VariantHandler) Delete(c *gin.Context) {
	variantID, ok := pathUUID(c, "variantId")
	if !ok {
		return
	}

	if err := h.service.DeleteVariant(c.Request.Context(), variantID); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *VariantHandler) bind(c *gin.Context) (model.VariantRequest, bool) {
	var req model.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return req, false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid variant payload", err)
		return req, false
	}
	return req, true
}

func (h *VariantHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, model.ErrVariantNotFound):
		response.NotFound(c, "variant not found")
	default:
		log.Error().Err(err).Msg("variant handler error")
		response.InternalServerError(c, "internal error")
	}
}

// relatedActor pulls the authenticated admin's ID for audit columns.
func relatedActor(c *gin.Context) *uuid.UUID {
	raw, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return nil
	}
	return &id
}
