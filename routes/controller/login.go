package controller

import (
	"net/http"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
	"github.com/veldwork/veld/pkg/veld/session"
	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
	"golang.org/x/crypto/bcrypt"
)


func bindLoginController(ctx *RouterContext) {
	http.HandleFunc("GET /login", UseMiddleware(
		[]Middleware{Logged, UseRequestScope, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			if rc.Config.GlobalVisibility == veld.GLOBAL_VISIBILITY_MAINTENANCE {
				FoundAt(w, "/maintenance-notice")
				return
			}
			if rc.LoginInfo != nil && rc.LoginInfo.LoggedIn { FoundAt(w, "/"); return }
			LogTemplateError(rc.LoadTemplate("login").Execute(w, &templates.LoginTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				ErrorMsg: "",
			}))
		},
	))

	http.HandleFunc("POST /login", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, UseRequestScope, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			if rc.Config.GlobalVisibility == veld.GLOBAL_VISIBILITY_MAINTENANCE {
				FoundAt(w, "/maintenance-notice")
				return
			}
			renderWithError := func(msg string) {
				LogTemplateError(rc.LoadTemplate("login").Execute(w, &templates.LoginTemplateModel{
					Config: rc.Config,
					LoginInfo: rc.LoginInfo,
					Scope: rc.Scope,
					ErrorMsg: msg,
				}))
			}
			email := r.Form.Get("email")
			password := r.Form.Get("password")
			account, err := rc.DatabaseInterface.GetAccountByEmail(email)
			if err == db.ErrEntityNotFound {
				// the same message as a wrong password. login errors
				// should not reveal which accounts exist.
				renderWithError("Invalid email or password.")
				return
			}
			if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			if account.Status == model.BANNED {
				renderWithError("Account suspended.")
				return
			}
			err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
			if err == bcrypt.ErrMismatchedHashAndPassword {
				renderWithError("Invalid email or password.")
				return
			} else if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			ss := session.NewSessionString()
			err = rc.SessionInterface.RegisterSession(account.Email, ss)
			if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			w.Header().Add("Set-Cookie", (&http.Cookie{
				Name: COOKIE_KEY_SESSION,
				Value: ss,
				Path: "/",
				MaxAge: 3600,
				HttpOnly: true,
				Secure: true,
				SameSite: http.SameSiteDefaultMode,
			}).String())
			w.Header().Add("Set-Cookie", (&http.Cookie{
				Name: COOKIE_KEY_EMAIL,
				Value: account.Email,
				Path: "/",
				MaxAge: 3600,
				HttpOnly: true,
				Secure: true,
				SameSite: http.SameSiteDefaultMode,
			}).String())
			FoundAt(w, "/")
		},
	))
}
