package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/pkg/httpcontext"
	"github.com/learnity/backend/repository"
	userUC "github.com/learnity/backend/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Update name and email of the current user
// @Tags users
// @Router /api/v1/users/me [put]
func (h *UserHandler) UpdateInfo(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	var req transport.UpdateUserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateInfo(stdCtx, user.ID, req.Name, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Change the current user's password
// @Tags users
// @Router /api/v1/users/me/password [put]
func (h *UserHandler) UpdatePassword(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	var req transport.UpdatePasswordRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdatePassword(stdCtx, user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Update the current user's avatar
// @Tags users
// @Router /api/v1/users/me/avatar [put]
func (h *UserHandler) UpdateAvatar(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	var req transport.UpdateAvatarRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateAvatar(stdCtx, user.ID, req.AvatarURL)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary List all users (admin)
// @Tags users
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(ctx *fasthttp.RequestCtx) {
	filter := repository.UserFilter{
		Role:   string(ctx.QueryArgs().Peek("role")),
		Limit:  queryInt(ctx, "limit"),
		Offset: queryInt(ctx, "offset"),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Change a user's role (admin)
// @Tags users
// @Router /api/v1/admin/users/role [put]
func (h *UserHandler) UpdateRole(ctx *fasthttp.RequestCtx) {
	var req transport.UpdateRoleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ID == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateRole(stdCtx, req.ID, req.Role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a user (admin)
// @Tags users
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := ctx.UserValue("id").(string)
	if !ok || id == "" {
		h.badRequest(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}

func queryInt(ctx *fasthttp.RequestCtx, name string) int {
	v, err := strconv.Atoi(string(ctx.QueryArgs().Peek(name)))
	if err != nil {
		return 0
	}
	return v
}
