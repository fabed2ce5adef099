package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/service"
	"storefront-admin/internal/shared/response"
)

type ProductHandler struct {
	service service.Service
}

func NewProductHandler(svc service.Service) *ProductHandler {
	return &ProductHandler{service: svc}
}

// List - GET /v1/admin/products
func (h *ProductHandler) List(c *gin.Context) {
	var req model.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		response.InternalServerError(c, "failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Products, &response.Meta{
		Page:     resp.Page,
		PageSize: resp.PageSize,
		Total:    resp.Total,
	})
}

// Get - GET /v1/admin/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create - POST /v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product payload", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update - PUT /v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product payload", err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete - DELETE /v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// PriceHistory - GET /v1/admin/products/:id/price-history
func (h *ProductHandler) PriceHistory(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	history, err := h.service.PriceHistory(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

// UploadImages - POST /v1/admin/products/:id/images
func (h *ProductHandler) UploadImages(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.BadRequest(c, "at least one image is required")
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "unreadable upload: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.BadRequest(c, "unreadable upload: "+fh.Filename)
			return
		}
		uploads = append(uploads, service.ImageUpload{Filename: fh.Filename, Data: data})
	}

	urls, err := h.service.UploadImages(c.Request.Context(), id, uploads)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"urls": urls})
}

func (h *ProductHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, model.ErrDuplicateSKU):
		response.Conflict(c, "sku already in use")
	case errors.Is(err, model.ErrDuplicateSlug):
		response.Conflict(c, "slug already in use")
	case errors.Is(err, model.ErrDuplicateName):
		response.Conflict(c, "name already in use")
	case errors.Is(err, model.ErrProductsInOrders):
		response.Conflict(c, "product is referenced by orders")
	default:
		log.Error().Err(err).Msg("product handler error")
		response.InternalServerError(c, "internal error")
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
