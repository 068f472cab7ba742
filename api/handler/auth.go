package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/middleware"
	"github.com/learnity/backend/pkg/httpcontext"
	authUC "github.com/learnity/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc      *authUC.UseCase
	cookies middleware.CookieWriter
}

func NewAuthHandler(uc *authUC.UseCase, cookies middleware.CookieWriter, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		cookies:     cookies,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activationToken, err := h.uc.Register(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondRaw(ctx, http.StatusCreated, transport.RegisterResponse{
		Success:         true,
		Message:         fmt.Sprintf("please check your email %s to activate your account", req.Email),
		ActivationToken: activationToken,
	})
}

// @Summary Activate a registered account
// @Tags auth
// @Router /api/v1/auth/activate [post]
func (h *AuthHandler) Activate(ctx *fasthttp.RequestCtx) {
	var req transport.ActivationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ActivationToken == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Activate(stdCtx, req.ActivationToken, req.ActivationCode)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, pair, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.cookies.Set(ctx, pair)
	h.respondRaw(ctx, http.StatusOK, transport.LoginResponse{
		Success:     true,
		User:        user,
		AccessToken: pair.AccessToken,
	})
}

// @Summary Log in via an external identity provider
// @Tags auth
// @Router /api/v1/auth/social [post]
func (h *AuthHandler) SocialAuth(ctx *fasthttp.RequestCtx) {
	var req transport.SocialAuthRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, pair, err := h.uc.SocialLogin(stdCtx, req.Email, req.Name, req.AvatarURL)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.cookies.Set(ctx, pair)
	h.respondRaw(ctx, http.StatusOK, transport.LoginResponse{
		Success:     true,
		User:        user,
		AccessToken: pair.AccessToken,
	})
}

// @Summary Rotate the token pair using the refresh cookie
// @Tags auth
// @Router /api/v1/auth/refresh [get]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	refreshToken := string(ctx.Request.Header.Cookie(middleware.RefreshTokenCookie))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, pair, err := h.uc.Refresh(stdCtx, refreshToken)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.cookies.Set(ctx, pair)
	h.respondRaw(ctx, http.StatusOK, transport.RefreshResponse{
		Success:     true,
		AccessToken: pair.AccessToken,
	})
}

// @Summary Log out and revoke the session
// @Tags auth
// @Router /api/v1/auth/logout [get]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if user != nil {
		if err := h.uc.Logout(stdCtx, user.ID); err != nil {
			h.respondError(ctx, err)
			return
		}
	}

	h.cookies.Clear(ctx)
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// @Summary Current user profile
// @Tags auth
// @Router /api/v1/users/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	user := middleware.UserFrom(ctx)
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
