package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/category/model"
	"storefront-admin/internal/domains/category/service"
	"storefront-admin/internal/shared/response"
)

type CategoryHandler struct {
	service service.Service
}

func NewCategoryHandler(svc service.Service) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List - GET /v1/admin/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req model.ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	categories, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		response.InternalServerError(c, "failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Get - GET /v1/admin/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

// Create - POST /v1/admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category payload", err)
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

// Update - PUT /v1/admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category payload", err)
		return
	}

	cat, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

// Delete - DELETE /v1/admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CategoryHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrCategoryNotFound):
		response.NotFound(c, "category not found")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.Conflict(c, "slug already in use")
	case errors.Is(err, model.ErrDuplicateName):
		response.Conflict(c, "name already in use")
	case errors.Is(err, model.ErrCategoryHasProducts):
		response.Conflict(c, "categoria possui produtos associados")
	default:
		log.Error().Err(err).Msg("category handler error")
		response.InternalServerError(c, "internal error")
	}
}

func pathInt(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
