package routes

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/log"
	"github.com/veldwork/veld/templates"
)

// middleware...

type Middleware func(HandlerFunc)HandlerFunc;
type HandlerFunc func(*RouterContext, http.ResponseWriter, *http.Request);

// UseMiddleware wraps `f` in `w` from the outside in. every request
// runs against its own shallow copy of `ctx`, so the per-request
// fields of RouterContext stay confined to one request.
func UseMiddleware(w []Middleware, ctx *RouterContext, f HandlerFunc) http.HandlerFunc {
	var res HandlerFunc = f
	i := len(w)-1
	for i >= 0 { res = w[i](res); i -= 1; }
	return func(w http.ResponseWriter, r *http.Request) {
		rc := *ctx
		res(&rc, w, r)
	}
}

var Logged Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		log.INFO("%s %s %s", r.RemoteAddr, r.Method, r.URL.Path)
		f(ctx, w, r)
	}
}

// UseRequestScope gives the request its scope and login info. the
// handlers behind it can rely on ctx.Scope being non-nil; a failed
// session lookup parks the error in ctx.LastError for ErrorGuard.
var UseRequestScope Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		ctx.Scope, ctx.LoginInfo, ctx.LastError = GenerateRequestScope(ctx, r)
		f(ctx, w, r)
	}
}

var LoginRequired Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		ctx.Scope, ctx.LoginInfo, ctx.LastError = GenerateRequestScope(ctx, r)
		if ctx.LastError != nil {
			ctx.ReportRedirect("/login", 0, "Login Check Failed", fmt.Sprintf("Failed while checking login status: %s.", ctx.LastError), w, r)
			return
		}
		if ctx.LoginInfo == nil || !ctx.LoginInfo.LoggedIn {
			ctx.ReportRedirect("/login", 0, "Login Required", "The action you requested requires you to log in. Please log in and try again.", w, r)
			return
		}
		f(ctx, w, r)
	}
}

// ValidPOSTRequestRequired parses the form up front so the handlers
// behind it can read r.Form directly.
var ValidPOSTRequestRequired Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			ctx.ReportNormalError(fmt.Sprintf("Invalid request: %s", err.Error()), w, r)
			return
		}
		f(ctx, w, r)
	}
}

var ErrorGuard Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		if ctx.LastError != nil {
			ctx.ReportInternalError(fmt.Sprintf("Internal error: %s\n", ctx.LastError), w, r)
			return
		}
		f(ctx, w, r)
	}
}

func CheckGlobalVisibleToUser(ctx *RouterContext, loginInfo *templates.LoginInfoModel) bool {
	if loginInfo == nil { return false }
	switch ctx.Config.GlobalVisibility {
	case veld.GLOBAL_VISIBILITY_PUBLIC: return true
	case veld.GLOBAL_VISIBILITY_PRIVATE: return loginInfo.LoggedIn
	case veld.GLOBAL_VISIBILITY_SHUTDOWN:
		return slices.Contains(ctx.Config.FullAccessUser, loginInfo.Email)
	case veld.GLOBAL_VISIBILITY_MAINTENANCE: return false
	default: return false
	}
}

var GlobalVisibility Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		if !CheckGlobalVisibleToUser(ctx, ctx.LoginInfo) {
			switch ctx.Config.GlobalVisibility {
			case veld.GLOBAL_VISIBILITY_MAINTENANCE:
				FoundAt(w, "/maintenance-notice")
				return
			case veld.GLOBAL_VISIBILITY_SHUTDOWN:
				FoundAt(w, "/shutdown-notice")
				return
			case veld.GLOBAL_VISIBILITY_PRIVATE:
				FoundAt(w, "/private-notice")
				return
			}
		}
		f(ctx, w, r)
	}
}

var RateLimit Middleware = func(f HandlerFunc) HandlerFunc {
	return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		if ctx.RateLimiter.IsIPAllowed(ResolveMostPossibleIP(r)) {
			f(ctx, w, r)
		} else {
			w.WriteHeader(429)
		}
	}
}
