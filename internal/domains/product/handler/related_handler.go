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

type RelatedHandler struct {
	service service.Service
}

func NewRelatedHandler(svc service.Service) *RelatedHandler {
	return &RelatedHandler{service: svc}
}

// List - GET /v1/admin/products/:id/related
func (h *RelatedHandler) List(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	relations, err := h.service.ListRelated(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, relations)
}

// Add - POST /v1/admin/products/:id/related
func (h *RelatedHandler) Add(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.RelatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid relation payload", err)
		return
	}

	rel, err := h.service.AddRelated(c.Request.Context(), id, relatedActor(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rel)
}

// Remove - DELETE /v1/admin/products/:id/related/:relatedId
func (h *RelatedHandler) Remove(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	relatedID, ok := pathUUID(c, "relatedId")
	if !ok {
		return
	}

	if err := h.service.RemoveRelated(c.Request.Context(), id, relatedID); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *RelatedHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, model.ErrSelfRelation):
		response.BadRequest(c, "a product cannot relate to itself")
	case errors.Is(err, model.ErrDuplicateRelated):
		response.Conflict(c, "relation already exists")
	case errors.Is(err, model.ErrRelationNotFound):
		response.NotFound(c, "relation not found")
	default:
		log.Error().Err(err).Msg("related handler error")
		response.InternalServerError(c, "internal error")
	}
}
