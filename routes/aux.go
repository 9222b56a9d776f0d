package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/log"
	"github.com/veldwork/veld/pkg/veld/model"
	"github.com/veldwork/veld/templates"
)

const COOKIE_KEY_EMAIL = "veld-user-email"
const COOKIE_KEY_SESSION = "veld-session"

func LogIfError(err error) {
	if err != nil { log.ERR("%s", err.Error()) }
}

func FoundAt(w http.ResponseWriter, p string) {
	w.Header().Add("Content-Length", "0")
	w.Header().Add("Location", p)
	w.WriteHeader(302)
}

func LogTemplateError(e error) {
	if e != nil { log.ERR("template: %s", e.Error()) }
}

func GetEmailFromCookie(r *http.Request) (string, error) {
	s, err := r.Cookie(COOKIE_KEY_EMAIL)
	if err != nil { return "", err }
	return s.Value, nil
}

func CheckUserSession(ctx *RouterContext, r *http.Request) (bool, error) {
	email, err := GetEmailFromCookie(r)
	if err == http.ErrNoCookie { return false, nil }
	if err != nil { return false, err }
	s, err := r.Cookie(COOKIE_KEY_SESSION)
	if err == http.ErrNoCookie { return false, nil }
	if err != nil { return false, err }
	res, err := ctx.SessionInterface.VerifySession(email, s.Value)
	if err != nil { return false, err }
	return res, nil
}

// ResolveViewSettings builds the diff view settings of one request.
// explicit query parameters win over the account defaults. a present
// but empty or unparseable context parameter counts as "whole file"
// (nil context). when neither the query nor an account provides
// anything there are no view settings at all.
func ResolveViewSettings(r *http.Request, account *model.VeldAccount) *templates.ViewSettings {
	q := r.URL.Query()
	hasAny := false
	var viewContext *int = nil
	if q.Has("context") {
		hasAny = true
		v := strings.TrimSpace(q.Get("context"))
		if len(v) > 0 {
			n, err := strconv.Atoi(v)
			if err == nil { viewContext = &n }
		}
	} else if account != nil {
		viewContext = account.DefaultContext
	}
	var colWidth *int = nil
	if q.Has("column_width") {
		hasAny = true
		n, err := strconv.Atoi(strings.TrimSpace(q.Get("column_width")))
		if err == nil { colWidth = &n }
	} else if account != nil {
		colWidth = account.DefaultColumnWidth
	}
	if !hasAny && account == nil { return nil }
	return &templates.ViewSettings{
		Context: viewContext,
		ColumnWidth: colWidth,
	}
}

// GenerateRequestScope resolves the session cookies of one request
// into a fresh request scope plus the login info model the page
// header renders from. an absent or failed session yields a scope
// without a user, not an error.
func GenerateRequestScope(ctx *RouterContext, r *http.Request) (*templates.RequestScope, *templates.LoginInfoModel, error) {
	loggedOut := &templates.LoginInfoModel{
		LoggedIn: false,
		UserName: "",
		Email: "",
		IsAdmin: false,
	}
	scope := &templates.RequestScope{}
	scope.ViewSettings = ResolveViewSettings(r, nil)
	email, err := GetEmailFromCookie(r)
	if err != nil {
		if err != http.ErrNoCookie { return scope, nil, err }
		return scope, loggedOut, nil
	}
	s, err := r.Cookie(COOKIE_KEY_SESSION)
	if err != nil {
		if err != http.ErrNoCookie { return scope, nil, err }
		return scope, loggedOut, nil
	}
	ok, err := ctx.SessionInterface.VerifySession(email, s.Value)
	if err != nil { return scope, nil, err }
	if !ok { return scope, loggedOut, nil }
	account, err := ctx.DatabaseInterface.GetAccountByEmail(email)
	if err == db.ErrEntityNotFound { return scope, loggedOut, nil }
	if err != nil { return scope, nil, err }
	scope.User = account
	scope.ViewSettings = ResolveViewSettings(r, account)
	return scope, &templates.LoginInfoModel{
		LoggedIn: true,
		UserName: account.Nickname,
		Email: account.Email,
		IsAdmin: account.Status == model.ADMIN,
	}, nil
}

func GeneratePageInfo(r *http.Request, size int64) (*templates.PageInfoModel, error) {
	// the TotalPage here depends on the result of the actual query.
	// defaults to p=1 and s=50. .PageNum starts from 1 and gets
	// clamped into [1..totalPage] when a size of >= 0 is given; a
	// negative size skips the correction.
	p := r.URL.Query().Get("p")
	if len(p) <= 0 { p = "1" }
	s := r.URL.Query().Get("s")
	if len(s) <= 0 { s = "50" }
	pageNum, err := strconv.Atoi(p)
	if err != nil { return nil, err }
	pageSize, err := strconv.Atoi(s)
	if err != nil { return nil, err }
	if pageSize <= 0 { pageSize = 50 }
	totalPage := 0
	if size == 0 {
		totalPage = 1
	} else if size > 0 {
		totalPage = int(size) / pageSize
		if int(size) % pageSize != 0 { totalPage += 1 }
		if pageNum <= 1 { pageNum = 1 }
		if pageNum > totalPage { pageNum = totalPage }
	}
	return &templates.PageInfoModel{
		PageNum: pageNum,
		PageSize: pageSize,
		TotalPage: totalPage,
	}, nil
}
