package controller

import (
	"slices"
	"strings"

	"github.com/veldwork/veld/pkg/auxfuncs"
	"github.com/veldwork/veld/pkg/veld/model"
	. "github.com/veldwork/veld/routes"
)

// parseEmailListField reads a comma-separated list of emails out of a
// form field. entries without a "@" are dropped instead of reported;
// the review forms treat them as typos.
func parseEmailListField(s string) []string {
	res := make([]string, 0)
	for _, item := range auxfuncs.ParseCSV(s) {
		trimmed := strings.TrimSpace(item)
		if len(trimmed) <= 0 { continue }
		if !strings.Contains(trimmed, "@") { continue }
		if slices.Contains(res, trimmed) { continue }
		res = append(res, trimmed)
	}
	return res
}

// reviewParticipants collects every email that should hear about a
// review event. `exclude` is for the actor, who does not need a mail
// about what they just did.
func reviewParticipants(review *model.VeldReview, exclude string) []string {
	res := make([]string, 0, 1+len(review.ReviewerList)+len(review.CCList))
	for _, email := range append(append([]string{review.Owner}, review.ReviewerList...), review.CCList...) {
		if email == exclude { continue }
		if slices.Contains(res, email) { continue }
		res = append(res, email)
	}
	return res
}

func notifyReviewParticipants(rc *RouterContext, review *model.VeldReview, exclude string, title string, body string) {
	targets := reviewParticipants(review, exclude)
	if len(targets) <= 0 { return }
	go func() {
		for _, target := range targets {
			LogIfError(rc.Mailer.SendPlainTextMail(target, title, body))
		}
	}()
}
