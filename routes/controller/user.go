package controller

import (
	"fmt"
	"net/http"

	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
)


func bindUserController(ctx *RouterContext) {
	http.HandleFunc("GET /u/{nickname}", UseMiddleware(
		[]Middleware{Logged, UseRequestScope, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			nickname := r.PathValue("nickname")
			if !model.ValidNickname(nickname) {
				rc.ReportNotFound(nickname, "User", w, r)
				return
			}
			account, err := rc.DatabaseInterface.GetAccountByNickname(nickname)
			if err == db.ErrEntityNotFound {
				rc.ReportNotFound(nickname, "User", w, r)
				return
			}
			if err != nil {
				rc.ReportInternalError(err.Error(), w, r)
				return
			}
			count, err := rc.DatabaseInterface.CountAllReviewByOwner(account.Email)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to count reviews: %s.", err.Error()), w, r)
				return
			}
			pageInfo, err := GeneratePageInfo(r, count)
			if err != nil {
				rc.ReportNormalError("Invalid page number or page size.", w, r)
				return
			}
			reviewList, err := rc.DatabaseInterface.GetAllReviewByOwnerPaginated(account.Email, pageInfo.PageNum-1, pageInfo.PageSize)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to fetch reviews: %s.", err.Error()), w, r)
				return
			}
			LogTemplateError(rc.LoadTemplate("user").Execute(w, &templates.UserTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				User: account,
				ReviewList: reviewList,
				PageInfo: pageInfo,
			}))
		},
	))
}
