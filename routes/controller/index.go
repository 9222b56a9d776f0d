package controller

import (
	"fmt"
	"net/http"

	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
)

func bindIndexController(ctx *RouterContext) {
	http.HandleFunc("GET /{$}", UseMiddleware(
		[]Middleware{Logged, UseRequestScope, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			count, err := rc.DatabaseInterface.CountAllReview()
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to count reviews: %s.", err.Error()), w, r)
				return
			}
			pageInfo, err := GeneratePageInfo(r, count)
			if err != nil {
				rc.ReportNormalError("Invalid page number or page size.", w, r)
				return
			}
			reviewList, err := rc.DatabaseInterface.GetAllReviewPaginated(pageInfo.PageNum-1, pageInfo.PageSize)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to fetch reviews: %s.", err.Error()), w, r)
				return
			}
			LogTemplateError(rc.LoadTemplate("index").Execute(w, &templates.IndexTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				Announcement: RenderAnnouncement(rc.Config),
				ReviewList: reviewList,
				PageInfo: pageInfo,
			}))
		},
	))
}
