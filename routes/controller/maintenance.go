package controller

import (
	"net/http"

	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
)

func bindMaintenanceNoticeController(ctx *RouterContext) {
	http.HandleFunc("GET /maintenance-notice", UseMiddleware(
		[]Middleware{Logged, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			LogTemplateError(rc.LoadTemplate("maintenance-notice").Execute(w, &templates.MaintenanceNoticeTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Message: rc.Config.MaintenanceMessage,
			}))
		},
	))
}
