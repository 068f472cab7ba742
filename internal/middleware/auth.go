package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/learnity/backend/api/transport"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/pkg/httpcontext"
	authUC "github.com/learnity/backend/usecase/auth"
)

const userContextKey = "current_user"

// Authenticator turns the raw cookie pair into a resolved identity on
// the request context. When the access token has merely expired it
// performs a silent refresh and re-sets both cookies in the same
// response; any other failure rejects the request before the handler
// runs.
type Authenticator struct {
	uc      *authUC.UseCase
	cookies CookieWriter
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func NewAuthenticator(uc *authUC.UseCase, cookies CookieWriter, adapter *httpcontext.Adapter, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		uc:      uc,
		cookies: cookies,
		adapter: adapter,
		logger:  logger,
	}
}

// Authenticate wraps a handler with the session check.
func (a *Authenticator) Authenticate(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		accessToken := string(ctx.Request.Header.Cookie(AccessTokenCookie))
		refreshToken := string(ctx.Request.Header.Cookie(RefreshTokenCookie))

		stdCtx, cancel := a.adapter.Attach(ctx)
		defer cancel()

		user, rotated, err := a.uc.Authenticate(stdCtx, accessToken, refreshToken)
		if err != nil {
			a.logger.Debug("authentication rejected", zap.Error(err))
			respondError(ctx, err)
			return
		}
		if rotated != nil {
			a.cookies.Set(ctx, *rotated)
		}

		ctx.SetUserValue(userContextKey, user)
		next(ctx)
	}
}

// RequireRoles gates a handler on exact-match role membership. It must
// run after Authenticate; the check uses only the resolved in-request
// identity and never consults storage.
func RequireRoles(roles ...string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			user := UserFrom(ctx)
			if err := domain.RequireRole(user, roles...); err != nil {
				respondError(ctx, err)
				return
			}
			next(ctx)
		}
	}
}

// UserFrom returns the identity resolved by Authenticate, or nil.
func UserFrom(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(userContextKey).(*domain.User)
	return user
}

func respondError(ctx *fasthttp.RequestCtx, err error) {
	status, envelope := transport.MapError(err)
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, marshalErr := json.Marshal(envelope)
	if marshalErr != nil {
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.SetBody(body)
}
