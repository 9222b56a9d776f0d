package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/veldwork/veld/pkg/auxfuncs"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
	"golang.org/x/crypto/bcrypt"
)

// deriveNickname turns the local part of an email into something that
// passes ValidNickname, replacing whatever does not belong with "-".
func deriveNickname(email string) string {
	local := model.EmailLocalPart(email)
	res := make([]byte, 0, len(local))
	for _, k := range []byte(local) {
		if ('0' <= k && k <= '9') || ('A' <= k && k <= 'Z') || ('a' <= k && k <= 'z') || k == '_' || k == '-' || k == '.' {
			res = append(res, k)
		} else {
			res = append(res, '-')
		}
	}
	if len(res) <= 0 { return "user" }
	return string(res)
}

func bindRegisterController(ctx *RouterContext) {
	http.HandleFunc("GET /register", UseMiddleware(
		[]Middleware{Logged, UseRequestScope, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			switch rc.Config.GlobalVisibility {
			case veld.GLOBAL_VISIBILITY_MAINTENANCE:
				FoundAt(w, "/maintenance-notice")
				return
			case veld.GLOBAL_VISIBILITY_SHUTDOWN:
				FoundAt(w, "/shutdown-notice")
				return
			}
			if !rc.Config.AllowRegistration { FoundAt(w, "/"); return }
			LogTemplateError(rc.LoadTemplate("registration").Execute(w, &templates.RegistrationTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				ErrorMsg: "",
			}))
		},
	))

	http.HandleFunc("POST /register", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, UseRequestScope, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			switch rc.Config.GlobalVisibility {
			case veld.GLOBAL_VISIBILITY_MAINTENANCE:
				FoundAt(w, "/maintenance-notice")
				return
			case veld.GLOBAL_VISIBILITY_SHUTDOWN:
				FoundAt(w, "/shutdown-notice")
				return
			}
			if !rc.Config.AllowRegistration {
				rc.ReportNormalError("Registration not allowed on this instance.", w, r)
				return
			}
			renderWithError := func(msg string) {
				LogTemplateError(rc.LoadTemplate("registration").Execute(w, &templates.RegistrationTemplateModel{
					Config: rc.Config,
					LoginInfo: rc.LoginInfo,
					Scope: rc.Scope,
					ErrorMsg: msg,
				}))
			}
			email := strings.TrimSpace(r.Form.Get("email"))
			if len(email) <= 0 || !strings.Contains(email, "@") || len(model.EmailLocalPart(email)) <= 0 {
				renderWithError("Please provide a valid email address.")
				return
			}
			password := r.Form.Get("password")
			if len(password) <= 0 {
				renderWithError("Please provide a password.")
				return
			}
			if password != r.Form.Get("confirm-password") {
				renderWithError("The two passwords you have provided do not match.")
				return
			}
			nickname := strings.TrimSpace(r.Form.Get("nickname"))
			if len(nickname) > 0 {
				if !model.ValidNickname(nickname) {
					renderWithError("Nickname must consist of only upper & lowercase letters (a-z, A-Z), 0-9, underscore, hyphen and dot.")
					return
				}
				_, err := rc.DatabaseInterface.GetAccountByNickname(nickname)
				if err == nil {
					renderWithError("Nickname already taken. Please try another one.")
					return
				}
				if err != db.ErrEntityNotFound {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
			}
			passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to hash the provided password: %s. Please try again.", err.Error()), w, r)
				return
			}
			// the account always starts with a nickname derived from the
			// email, whether or not one was chosen in the form; a chosen
			// one is written afterwards so it gets marked as chosen.
			derived := deriveNickname(email)
			for {
				_, err := rc.DatabaseInterface.GetAccountByNickname(derived)
				if err == db.ErrEntityNotFound { break }
				if err != nil {
					rc.ReportInternalError(err.Error(), w, r)
					return
				}
				derived = fmt.Sprintf("%s-%s", deriveNickname(email), auxfuncs.GenSym(4))
			}
			_, err = rc.DatabaseInterface.RegisterAccount(email, derived, string(passwordHash), model.NORMAL_ACCOUNT)
			if err == db.ErrEntityAlreadyExists {
				renderWithError("An account with this email already exists.")
				return
			}
			if err != nil {
				renderWithError(fmt.Sprintf("Error while registering: %s. Please try again.", err.Error()))
				return
			}
			if len(nickname) > 0 {
				err = rc.DatabaseInterface.UpdateAccountNickname(email, nickname)
				if err != nil {
					rc.ReportInternalError(fmt.Sprintf("Failed to save the chosen nickname: %s. You can pick it again in the settings page.", err.Error()), w, r)
					return
				}
			}
			rc.ReportRedirect("/login", 3, "Registered", "Your account has been created. You can now log in.", w, r)
		},
	))
}
