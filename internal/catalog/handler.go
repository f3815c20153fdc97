package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/tools", h.listTools)
	rg.GET("/catalog/bundles", h.listBundles)
}

func (h *Handler) listTools(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		tools []Tool
		err   error
	)
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		tools, err = h.Repo.GetByCategory(ctx, Category(strings.ToLower(raw)))
	} else {
		tools, err = h.Repo.GetAll(ctx)
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load catalog", nil)
		return
	}
	respond.OK(c, gin.H{"tools": tools, "count": len(tools)})
}

func (h *Handler) listBundles(c *gin.Context) {
	bundles, err := h.Repo.GetBundles(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load bundles", nil)
		return
	}
	respond.OK(c, gin.H{"bundles": bundles, "count": len(bundles)})
}
