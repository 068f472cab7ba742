package middleware

import (
	"time"

	"github.com/valyala/fasthttp"

	"github.com/learnity/backend/pkg/token"
)

// Cookie names carried between the client and the session authority.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieWriter issues and clears the session cookie pair. Max-age
// mirrors each token's own expiry; Secure is set only in production.
type CookieWriter struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Secure     bool
}

// Set writes both token cookies onto the response.
func (w CookieWriter) Set(ctx *fasthttp.RequestCtx, pair token.Pair) {
	w.set(ctx, AccessTokenCookie, pair.AccessToken, w.AccessTTL)
	w.set(ctx, RefreshTokenCookie, pair.RefreshToken, w.RefreshTTL)
}

// Clear expires both token cookies immediately.
func (w CookieWriter) Clear(ctx *fasthttp.RequestCtx) {
	w.clear(ctx, AccessTokenCookie)
	w.clear(ctx, RefreshTokenCookie)
}

func (w CookieWriter) set(ctx *fasthttp.RequestCtx, name, value string, ttl time.Duration) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetValue(value)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetMaxAge(int(ttl.Seconds()))
	c.SetSecure(w.Secure)

	ctx.Response.Header.SetCookie(c)
}

func (w CookieWriter) clear(ctx *fasthttp.RequestCtx, name string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetValue("")
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(fasthttp.CookieExpireDelete)
	c.SetSecure(w.Secure)

	ctx.Response.Header.SetCookie(c)
}
