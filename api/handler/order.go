package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/pkg/httpcontext"
	"github.com/learnity/backend/repository"
	orderUC "github.com/learnity/backend/usecase/order"
)

type OrderHandler struct {
	baseHandler
	uc *orderUC.UseCase
}

func NewOrderHandler(uc *orderUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Purchase a course
// @Tags orders
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	var req transport.OrderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.CourseID == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	order, err := h.uc.Create(stdCtx, user.ID, req.CourseID, req.PaymentInfo)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, order)
}

// @Summary List all orders (admin)
// @Tags orders
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.OrderFilter{
		UserID: string(ctx.QueryArgs().Peek("user_id")),
		Limit:  queryInt(ctx, "limit"),
		Offset: queryInt(ctx, "offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	orders, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, orders)
}
