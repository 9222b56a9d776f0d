package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/templates"
)

func newTestRouterContext() *RouterContext {
	cfg := &veld.VeldConfig{SiteName: "Veld"}
	lib := templates.NewUserLibrary(cfg, nil, nil)
	return &RouterContext{
		Config: cfg,
		MasterTemplate: templates.LoadTemplate(lib),
	}
}

func TestUseMiddlewareWrapsOutsideIn(t *testing.T) {
	trace := make([]string, 0)
	mk := func(name string) Middleware {
		return func(f HandlerFunc) HandlerFunc {
			return func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
				trace = append(trace, name)
				f(ctx, w, r)
			}
		}
	}
	h := UseMiddleware([]Middleware{mk("outer"), mk("inner")}, &RouterContext{},
		func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
			trace = append(trace, "handler")
		},
	)
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, trace)
}

func TestUseMiddlewareCopiesContextPerRequest(t *testing.T) {
	shared := &RouterContext{}
	seen := make([]error, 0)
	h := UseMiddleware(nil, shared, func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		seen = append(seen, ctx.LastError)
		ctx.LastError = fmt.Errorf("per-request")
	})
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	// writes from inside a request never reach the shared context or
	// the next request.
	assert.Nil(t, shared.LastError)
	assert.Equal(t, []error{nil, nil}, seen)
}

func TestValidPOSTRequestRequiredParsesForm(t *testing.T) {
	called := false
	h := ValidPOSTRequestRequired(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "bar", r.Form.Get("foo"))
	})
	r := httptest.NewRequest("POST", "/x", strings.NewReader("foo=bar"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h(newTestRouterContext(), httptest.NewRecorder(), r)
	assert.True(t, called)
}

func TestValidPOSTRequestRequiredRejectsBadForm(t *testing.T) {
	called := false
	h := ValidPOSTRequestRequired(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		called = true
	})
	r := httptest.NewRequest("POST", "/x", strings.NewReader("foo=%zz"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(newTestRouterContext(), rec, r)
	assert.False(t, called)
	assert.Equal(t, 400, rec.Code)
}

func TestErrorGuardShortCircuits(t *testing.T) {
	ctx := newTestRouterContext()
	ctx.LastError = fmt.Errorf("boom")
	called := false
	h := ErrorGuard(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		called = true
	})
	rec := httptest.NewRecorder()
	h(ctx, rec, httptest.NewRequest("GET", "/", nil))
	assert.False(t, called)
	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")

	h(newTestRouterContext(), httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)
}

func TestCheckGlobalVisibleToUser(t *testing.T) {
	in := &templates.LoginInfoModel{LoggedIn: true, Email: "alice@example.com"}
	out := &templates.LoginInfoModel{LoggedIn: false}
	tests := []struct {
		name string
		visibility string
		login *templates.LoginInfoModel
		allowed []string
		want bool
	}{
		{"public logged out", veld.GLOBAL_VISIBILITY_PUBLIC, out, nil, true},
		{"public logged in", veld.GLOBAL_VISIBILITY_PUBLIC, in, nil, true},
		{"private logged out", veld.GLOBAL_VISIBILITY_PRIVATE, out, nil, false},
		{"private logged in", veld.GLOBAL_VISIBILITY_PRIVATE, in, nil, true},
		{"shutdown not allowed", veld.GLOBAL_VISIBILITY_SHUTDOWN, in, nil, false},
		{"shutdown allowed", veld.GLOBAL_VISIBILITY_SHUTDOWN, in, []string{"alice@example.com"}, true},
		{"maintenance", veld.GLOBAL_VISIBILITY_MAINTENANCE, in, nil, false},
		{"nil login info", veld.GLOBAL_VISIBILITY_PUBLIC, nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &RouterContext{Config: &veld.VeldConfig{
				GlobalVisibility: tt.visibility,
				FullAccessUser: tt.allowed,
			}}
			assert.Equal(t, tt.want, CheckGlobalVisibleToUser(ctx, tt.login))
		})
	}
}

func TestGlobalVisibilityRedirects(t *testing.T) {
	tests := []struct {
		visibility string
		wantLocation string
	}{
		{veld.GLOBAL_VISIBILITY_MAINTENANCE, "/maintenance-notice"},
		{veld.GLOBAL_VISIBILITY_SHUTDOWN, "/shutdown-notice"},
		{veld.GLOBAL_VISIBILITY_PRIVATE, "/private-notice"},
	}
	for _, tt := range tests {
		t.Run(tt.visibility, func(t *testing.T) {
			ctx := &RouterContext{
				Config: &veld.VeldConfig{GlobalVisibility: tt.visibility},
				LoginInfo: &templates.LoginInfoModel{LoggedIn: false},
			}
			called := false
			h := GlobalVisibility(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
				called = true
			})
			rec := httptest.NewRecorder()
			h(ctx, rec, httptest.NewRequest("GET", "/", nil))
			assert.False(t, called)
			assert.Equal(t, 302, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestGlobalVisibilityPassesPublic(t *testing.T) {
	ctx := &RouterContext{
		Config: &veld.VeldConfig{GlobalVisibility: veld.GLOBAL_VISIBILITY_PUBLIC},
		LoginInfo: &templates.LoginInfoModel{LoggedIn: false},
	}
	called := false
	h := GlobalVisibility(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		called = true
	})
	h(ctx, httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, called)
}

func TestRateLimitTurnsAwayExcessRequests(t *testing.T) {
	ctx := &RouterContext{RateLimiter: NewRateLimiter(&veld.VeldConfig{MaxRequestInSecond: 1})}
	h := RateLimit(func(ctx *RouterContext, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "10.1.2.3:4444"
	rec := httptest.NewRecorder()
	h(ctx, rec, r)
	assert.Equal(t, 200, rec.Code)

	// the burst is spent; the next request right after gets a 429.
	rec = httptest.NewRecorder()
	h(ctx, rec, r)
	assert.Equal(t, 429, rec.Code)

	// a different address has its own limiter.
	r2 := httptest.NewRequest("POST", "/login", nil)
	r2.RemoteAddr = "10.9.9.9:4444"
	rec = httptest.NewRecorder()
	h(ctx, rec, r2)
	assert.Equal(t, 200, rec.Code)
}
