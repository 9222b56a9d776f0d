package controller

import (
	"net/http"

	. "github.com/veldwork/veld/routes"
)


func bindLogoutController(ctx *RouterContext) {
	http.HandleFunc("GET /logout", UseMiddleware(
		[]Middleware{Logged, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			email, err := GetEmailFromCookie(r)
			if err == nil {
				sk, err := r.Cookie(COOKIE_KEY_SESSION)
				if err == nil {
					LogIfError(rc.SessionInterface.RevokeSession(email, sk.Value))
				}
			}
			// clear the cookies even when there was no live session to
			// revoke; a stale cookie pair should not survive a logout.
			w.Header().Add("Set-Cookie", (&http.Cookie{
				Name: COOKIE_KEY_SESSION,
				Value: "",
				Path: "/",
				MaxAge: -1,
				HttpOnly: true,
				Secure: true,
				SameSite: http.SameSiteDefaultMode,
			}).String())
			w.Header().Add("Set-Cookie", (&http.Cookie{
				Name: COOKIE_KEY_EMAIL,
				Value: "",
				Path: "/",
				MaxAge: -1,
				HttpOnly: true,
				Secure: true,
				SameSite: http.SameSiteDefaultMode,
			}).String())
			FoundAt(w, "/")
		},
	))
}
