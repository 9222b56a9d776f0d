package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
	"golang.org/x/crypto/bcrypt"
)

func settingErrorMsg(t string, msg string) struct{Type string; Message string} {
	return struct{Type string; Message string}{Type: t, Message: msg}
}

// parseViewSettingField reads an optional positive integer form field.
// an empty field means NULL; anything unparseable or non-positive is
// treated the same way instead of being reported.
func parseViewSettingField(s string) *int {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) <= 0 { return nil }
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 { return nil }
	return &n
}

func bindSettingController(ctx *RouterContext) {
	http.HandleFunc("GET /setting", UseMiddleware(
		[]Middleware{Logged, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			account, err := rc.DatabaseInterface.GetAccountByEmail(rc.LoginInfo.Email)
			if err == db.ErrEntityNotFound {
				rc.ReportNotFound(rc.LoginInfo.Email, "User", w, r)
				return
			}
			if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			LogTemplateError(rc.LoadTemplate("setting").Execute(w, &templates.SettingTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				User: account,
			}))
		},
	))

	http.HandleFunc("POST /setting", UseMiddleware(
		[]Middleware{Logged, ValidPOSTRequestRequired, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			email := rc.LoginInfo.Email
			account, err := rc.DatabaseInterface.GetAccountByEmail(email)
			if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			renderWith := func(msg struct{Type string; Message string}) {
				LogTemplateError(rc.LoadTemplate("setting").Execute(w, &templates.SettingTemplateModel{
					Config: rc.Config,
					LoginInfo: rc.LoginInfo,
					Scope: rc.Scope,
					User: account,
					ErrorMsg: msg,
				}))
			}
			switch r.Form.Get("section") {
			case "profile":
				nickname := strings.TrimSpace(r.Form.Get("nickname"))
				if !model.ValidNickname(nickname) {
					renderWith(settingErrorMsg("error", "Nickname must consist of only upper & lowercase letters (a-z, A-Z), 0-9, underscore, hyphen and dot."))
					return
				}
				if nickname != account.Nickname {
					_, err := rc.DatabaseInterface.GetAccountByNickname(nickname)
					if err == nil {
						renderWith(settingErrorMsg("error", "Nickname already taken. Please try another one."))
						return
					}
					if err != db.ErrEntityNotFound {
						rc.ReportInternalError(err.Error(), w, r)
						return
					}
				}
				err = rc.DatabaseInterface.UpdateAccountNickname(email, nickname)
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				// pages everywhere render this user through the cache;
				// drop the stale fragment instead of waiting out the ttl.
				LogIfError(rc.CacheInterface.Delete(templates.ShowUserCacheKeyPrefix + email))
				account.Nickname = nickname
				account.NicknameSelected = true
				renderWith(settingErrorMsg("success", "Updated."))
			case "view":
				viewContext := parseViewSettingField(r.Form.Get("default-context"))
				colWidth := parseViewSettingField(r.Form.Get("default-column-width"))
				err = rc.DatabaseInterface.UpdateAccountViewSettings(email, viewContext, colWidth)
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				account.DefaultContext = viewContext
				account.DefaultColumnWidth = colWidth
				renderWith(settingErrorMsg("success", "Updated."))
			case "password":
				if r.Form.Get("new-password") != r.Form.Get("confirm-password") {
					renderWith(settingErrorMsg("error", "New password mismatch."))
					return
				}
				if len(r.Form.Get("new-password")) <= 0 {
					renderWith(settingErrorMsg("error", "The new password cannot be empty."))
					return
				}
				err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(r.Form.Get("current-password")))
				if err == bcrypt.ErrMismatchedHashAndPassword {
					renderWith(settingErrorMsg("error", "Wrong current password."))
					return
				}
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				newpwh, err := bcrypt.GenerateFromPassword([]byte(r.Form.Get("new-password")), bcrypt.DefaultCost)
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				err = rc.DatabaseInterface.UpdateAccountPassword(email, string(newpwh))
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				renderWith(settingErrorMsg("success", "Password changed."))
			default:
				rc.ReportNormalError("Unknown settings section.", w, r)
			}
		},
	))
}
