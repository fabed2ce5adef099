package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// Metrics - GET /v1/admin/dashboard/metrics
func (h *Handler) Metrics(c *gin.Context) {
	metrics, err := h.service.Metrics(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate dashboard metrics")
		response.InternalServerError(c, "failed to load dashboard metrics")
		return
	}
	response.Success(c, http.StatusOK, metrics)
}
