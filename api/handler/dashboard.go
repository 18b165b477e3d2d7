package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/pkg/httpcontext"
	statsUC "github.com/taskhive/backend/usecase/stats"
)

type DashboardHandler struct {
	baseHandler
	uc *statsUC.UseCase
}

func NewDashboardHandler(uc *statsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard aggregates for the caller
// @Tags dashboard
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.DashboardStats(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, stats)
}
