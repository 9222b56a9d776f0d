package controller

import (
	"fmt"
	"net/http"
	"strings"

	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
)

func bindNewReviewController(ctx *RouterContext) {
	http.HandleFunc("GET /review/new", UseMiddleware(
		[]Middleware{Logged, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			LogTemplateError(rc.LoadTemplate("new-review").Execute(w, &templates.NewReviewTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				ErrorMsg: "",
			}))
		},
	))

	http.HandleFunc("POST /review/new", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			renderWithError := func(msg string) {
				LogTemplateError(rc.LoadTemplate("new-review").Execute(w, &templates.NewReviewTemplateModel{
					Config: rc.Config,
					LoginInfo: rc.LoginInfo,
					Scope: rc.Scope,
					ErrorMsg: msg,
				}))
			}
			subject := strings.TrimSpace(r.Form.Get("subject"))
			if len(subject) <= 0 {
				renderWithError("A review needs a subject.")
				return
			}
			patch := r.Form.Get("patch")
			if len(strings.TrimSpace(patch)) <= 0 {
				renderWithError("A review needs a patch. Paste the output of `diff -u` or `git diff`.")
				return
			}
			description := r.Form.Get("description")
			reviewerList := parseEmailListField(r.Form.Get("reviewers"))
			ccList := parseEmailListField(r.Form.Get("cc"))
			owner := rc.LoginInfo.Email
			review, err := rc.DatabaseInterface.NewReview(subject, description, patch, owner, reviewerList, ccList)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to create review: %s.", err.Error()), w, r)
				return
			}
			rc.FireReviewWebhook(WEBHOOK_EVENT_REVIEW_CREATED, review, owner, "")
			notifyReviewParticipants(rc, review, owner,
				fmt.Sprintf("[%s] Review requested: %s", rc.Config.SiteName, review.Subject),
				fmt.Sprintf("%s asks you to review #%d (%s).\n\n%s\n\n%s/review/%d\n", owner, review.ReviewAbsId, review.Subject, description, rc.Config.ProperHTTPHostName(), review.ReviewAbsId),
			)
			FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
		},
	))
}
