package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/shared/server/respond"
)

// Handler exposes the health report.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches /health to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	report := h.Svc.Status(c.Request.Context())
	status := http.StatusOK
	if report.Status == StatusDown {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(c, status, report)
}
