package routes

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/mail"
	"github.com/veldwork/veld/pkg/veld/session"
	"github.com/veldwork/veld/templates"
)

type RouterContext struct {
	Config *veld.VeldConfig
	MasterTemplate *template.Template
	DatabaseInterface db.VeldDatabaseInterface
	SessionInterface session.VeldSessionStore
	CacheInterface cache.VeldCacheStore
	UserLibrary *templates.UserLibrary
	Mailer mail.VeldMailerInterface
	RateLimiter *RateLimiter

	// per-request fields. UseMiddleware hands every handler a shallow
	// copy of the shared context, so writing these never leaks into
	// another request running at the same time.
	LoginInfo *templates.LoginInfoModel
	Scope *templates.RequestScope
	LastError error
}

func (ctx *RouterContext) LoadTemplate(name string) *template.Template {
	return ctx.MasterTemplate.Lookup(name)
}

func (ctx *RouterContext) ReportNotFound(objName string, objType string, w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(404)
	LogTemplateError(ctx.LoadTemplate("error").Execute(w,
		templates.ErrorTemplateModel{
			Config: ctx.Config,
			LoginInfo: ctx.LoginInfo,
			ErrorCode: 404,
			ErrorMessage: fmt.Sprintf("%s %s not found", objType, objName),
		},
	))
}

func (ctx *RouterContext) ReportNormalError(msg string, w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(400)
	LogTemplateError(ctx.LoadTemplate("error").Execute(w,
		templates.ErrorTemplateModel{
			Config: ctx.Config,
			LoginInfo: ctx.LoginInfo,
			ErrorCode: 400,
			ErrorMessage: fmt.Sprintf("Error: %s", msg),
		},
	))
}

func (ctx *RouterContext) ReportInternalError(msg string, w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(500)
	LogTemplateError(ctx.LoadTemplate("error").Execute(w,
		templates.ErrorTemplateModel{
			Config: ctx.Config,
			LoginInfo: ctx.LoginInfo,
			ErrorCode: 500,
			ErrorMessage: fmt.Sprintf("Internal error: %s", msg),
		},
	))
}

func (ctx *RouterContext) ReportForbidden(msg string, w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(403)
	LogTemplateError(ctx.LoadTemplate("error").Execute(w,
		templates.ErrorTemplateModel{
			Config: ctx.Config,
			LoginInfo: ctx.LoginInfo,
			ErrorCode: 403,
			ErrorMessage: fmt.Sprintf("Forbidden: %s", msg),
		},
	))
}

// ReportRedirect renders an interstitial page that tells the user
// what happened and then sends them to `target` after `timeout`
// seconds. a timeout of 0 renders only the link without the refresh.
func (ctx *RouterContext) ReportRedirect(target string, timeout int, title string, msg string, w http.ResponseWriter, r *http.Request) {
	LogTemplateError(ctx.LoadTemplate("_redirect-with-message").Execute(w,
		templates.RedirectWithMessageModel{
			Config: ctx.Config,
			LoginInfo: ctx.LoginInfo,
			Timeout: timeout,
			RedirectUrl: target,
			MessageTitle: title,
			MessageText: msg,
		},
	))
}
