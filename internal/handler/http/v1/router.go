package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check открыт всегда
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}
	{
		protected.GET("/leaderboard", h.getLeaderboard)
		protected.GET("/shift", h.getShift)
		protected.GET("/assignments", h.listAssignments)
		protected.GET("/units/:unit/last-run", h.getLastRun)
		protected.GET("/live", h.getLiveState)
	}
}
