package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/pkg/httpcontext"
	analyticsUC "github.com/learnity/backend/usecase/analytics"
)

type AnalyticsHandler struct {
	baseHandler
	uc *analyticsUC.UseCase
}

func NewAnalyticsHandler(uc *analyticsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Monthly user signups over the last twelve months (admin)
// @Tags analytics
// @Router /api/v1/admin/analytics/users [get]
func (h *AnalyticsHandler) Users(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	months, err := h.uc.Users(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, months)
}

// @Summary Monthly course creation over the last twelve months (admin)
// @Tags analytics
// @Router /api/v1/admin/analytics/courses [get]
func (h *AnalyticsHandler) Courses(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	months, err := h.uc.Courses(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, months)
}

// @Summary Monthly order volume over the last twelve months (admin)
// @Tags analytics
// @Router /api/v1/admin/analytics/orders [get]
func (h *AnalyticsHandler) Orders(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	months, err := h.uc.Orders(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, months)
}
