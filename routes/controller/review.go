package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
	. "github.com/veldwork/veld/routes"
	"github.com/veldwork/veld/templates"
)

func resolveReviewOfRequest(rc *RouterContext, w http.ResponseWriter, r *http.Request) *model.VeldReview {
	rid, err := strconv.ParseInt(r.PathValue("rid"), 10, 64)
	if err != nil {
		rc.ReportNotFound(r.PathValue("rid"), "Review", w, r)
		return nil
	}
	review, err := rc.DatabaseInterface.GetReviewById(rid)
	if err == db.ErrEntityNotFound {
		rc.ReportNotFound(r.PathValue("rid"), "Review", w, r)
		return nil
	}
	if err != nil {
		rc.ReportInternalError(err.Error(), w, r)
		return nil
	}
	return review
}

// closing and reopening is for the owner and admins only. everyone
// else gets to post messages.
func canChangeReviewStatus(rc *RouterContext, review *model.VeldReview) bool {
	if rc.LoginInfo == nil || !rc.LoginInfo.LoggedIn { return false }
	if rc.LoginInfo.IsAdmin { return true }
	return rc.LoginInfo.Email == review.Owner
}

func bindReviewController(ctx *RouterContext) {
	http.HandleFunc("GET /review/{rid}", UseMiddleware(
		[]Middleware{Logged, UseRequestScope, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			review := resolveReviewOfRequest(rc, w, r)
			if review == nil { return }
			messageList, err := rc.DatabaseInterface.GetAllReviewMessage(review.ReviewAbsId)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to fetch review messages: %s.", err.Error()), w, r)
				return
			}
			renderedPatch, err := RenderPatch(review.Patch)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to render patch: %s.", err.Error()), w, r)
				return
			}
			LogTemplateError(rc.LoadTemplate("review").Execute(w, &templates.ReviewTemplateModel{
				Config: rc.Config,
				LoginInfo: rc.LoginInfo,
				Scope: rc.Scope,
				Review: review,
				RenderedPatch: renderedPatch,
				MessageList: messageList,
			}))
		},
	))

	http.HandleFunc("POST /review/{rid}/message", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			review := resolveReviewOfRequest(rc, w, r)
			if review == nil { return }
			content := strings.TrimSpace(r.Form.Get("content"))
			if len(content) <= 0 {
				rc.ReportRedirect(fmt.Sprintf("/review/%d", review.ReviewAbsId), 3, "Empty Message", "A review message cannot be empty.", w, r)
				return
			}
			author := rc.LoginInfo.Email
			err := rc.DatabaseInterface.NewReviewMessage(review.ReviewAbsId, model.REVIEW_EVENT_MESSAGE, author, content)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to save review message: %s.", err.Error()), w, r)
				return
			}
			rc.FireReviewWebhook(WEBHOOK_EVENT_REVIEW_MESSAGE, review, author, content)
			notifyReviewParticipants(rc, review, author,
				fmt.Sprintf("[%s] New message on review: %s", rc.Config.SiteName, review.Subject),
				fmt.Sprintf("%s wrote on review #%d (%s):\n\n%s\n\n%s/review/%d\n", author, review.ReviewAbsId, review.Subject, content, rc.Config.ProperHTTPHostName(), review.ReviewAbsId),
			)
			FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
		},
	))

	http.HandleFunc("POST /review/{rid}/close", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			review := resolveReviewOfRequest(rc, w, r)
			if review == nil { return }
			if !canChangeReviewStatus(rc, review) {
				rc.ReportForbidden("Only the review owner can close a review.", w, r)
				return
			}
			if review.Status == model.REVIEW_CLOSED {
				FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
				return
			}
			actor := rc.LoginInfo.Email
			err := rc.DatabaseInterface.UpdateReviewStatus(review.ReviewAbsId, model.REVIEW_CLOSED)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to close review: %s.", err.Error()), w, r)
				return
			}
			LogIfError(rc.DatabaseInterface.NewReviewMessage(review.ReviewAbsId, model.REVIEW_EVENT_CLOSED, actor, ""))
			review.Status = model.REVIEW_CLOSED
			rc.FireReviewWebhook(WEBHOOK_EVENT_REVIEW_CLOSED, review, actor, "")
			notifyReviewParticipants(rc, review, actor,
				fmt.Sprintf("[%s] Review closed: %s", rc.Config.SiteName, review.Subject),
				fmt.Sprintf("%s closed review #%d (%s).\n\n%s/review/%d\n", actor, review.ReviewAbsId, review.Subject, rc.Config.ProperHTTPHostName(), review.ReviewAbsId),
			)
			FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
		},
	))

	http.HandleFunc("POST /review/{rid}/reopen", UseMiddleware(
		[]Middleware{Logged, RateLimit, ValidPOSTRequestRequired, LoginRequired, GlobalVisibility, ErrorGuard}, ctx,
		func(rc *RouterContext, w http.ResponseWriter, r *http.Request) {
			review := resolveReviewOfRequest(rc, w, r)
			if review == nil { return }
			if !canChangeReviewStatus(rc, review) {
				rc.ReportForbidden("Only the review owner can reopen a review.", w, r)
				return
			}
			if review.Status == model.REVIEW_OPEN {
				FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
				return
			}
			actor := rc.LoginInfo.Email
			err := rc.DatabaseInterface.UpdateReviewStatus(review.ReviewAbsId, model.REVIEW_OPEN)
			if err != nil {
				rc.ReportInternalError(fmt.Sprintf("Failed to reopen review: %s.", err.Error()), w, r)
				return
			}
			LogIfError(rc.DatabaseInterface.NewReviewMessage(review.ReviewAbsId, model.REVIEW_EVENT_REOPENED, actor, ""))
			review.Status = model.REVIEW_OPEN
			rc.FireReviewWebhook(WEBHOOK_EVENT_REVIEW_REOPENED, review, actor, "")
			FoundAt(w, fmt.Sprintf("/review/%d", review.ReviewAbsId))
		},
	))
}
