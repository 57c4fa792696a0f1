package handler

import (
	"go.uber.org/zap"

	"prdashboard/internal/domain/overview"
	"prdashboard/internal/domain/pr"
)

type Handler struct {
	PRSvc       pr.Service
	OverviewSvc overview.Service
	Log         *zap.Logger
}

func New(
	prSvc pr.Service,
	overviewSvc overview.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		PRSvc:       prSvc,
		OverviewSvc: overviewSvc,
		Log:         log,
	}
}
