package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.create)
}

func (h *Handler) create(c *gin.Context) {
	var body assessment.Assessment
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed JSON body", nil)
		return
	}

	resp, err := h.Svc.Recommend(c.Request.Context(), body)
	if err != nil {
		var invalid ErrInvalidAssessment
		if errors.As(err, &invalid) {
			respond.Error(c, http.StatusBadRequest, "invalid_assessment", invalid.Reason.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build recommendations", nil)
		return
	}
	respond.OK(c, resp)
}
