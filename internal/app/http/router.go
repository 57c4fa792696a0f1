package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prdashboard/internal/app/http/handler"
	"prdashboard/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.GET("/overview/pr-assignment", h.OverviewPRAssignment)
	r.POST("/overview/pr-assignment/popover", h.OverviewPRAssignmentPopover)

	r.POST("/pullRequest/open", h.PROpen)
	r.POST("/pullRequest/close", h.PRClose)
	r.POST("/pullRequest/assign", h.PRAssign)
	r.POST("/pullRequest/unassign", h.PRUnassign)

	return r
}
