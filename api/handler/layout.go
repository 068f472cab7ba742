package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/pkg/httpcontext"
	layoutUC "github.com/learnity/backend/usecase/layout"
)

type LayoutHandler struct {
	baseHandler
	uc *layoutUC.UseCase
}

func NewLayoutHandler(uc *layoutUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *LayoutHandler {
	return &LayoutHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create a layout document (admin)
// @Tags layouts
// @Router /api/v1/admin/layouts [post]
func (h *LayoutHandler) Create(ctx *fasthttp.RequestCtx) {
	layout, ok := h.decodeLayout(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, layout)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Replace a layout document (admin)
// @Tags layouts
// @Router /api/v1/admin/layouts [put]
func (h *LayoutHandler) Update(ctx *fasthttp.RequestCtx) {
	layout, ok := h.decodeLayout(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, layout)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Fetch the layout document for a type
// @Tags layouts
// @Router /api/v1/layouts/{type} [get]
func (h *LayoutHandler) Get(ctx *fasthttp.RequestCtx) {
	layoutType, ok := ctx.UserValue("type").(string)
	if !ok || !domain.ValidType(layoutType) {
		h.badRequest(ctx, "unknown layout type")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	layout, err := h.uc.GetByType(stdCtx, layoutType)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, layout)
}

func (h *LayoutHandler) decodeLayout(ctx *fasthttp.RequestCtx) (*domain.Layout, bool) {
	var req transport.LayoutRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return nil, false
	}
	if !domain.ValidType(req.Type) {
		h.badRequest(ctx, "unknown layout type")
		return nil, false
	}
	return &domain.Layout{
		Type:       req.Type,
		Banner:     req.Banner,
		FAQ:        req.FAQ,
		Categories: req.Categories,
	}, true
}
