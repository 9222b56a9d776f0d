package routes

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/log"
	"github.com/veldwork/veld/pkg/veld/model"
)

const (
	WEBHOOK_EVENT_REVIEW_CREATED = "review_created"
	WEBHOOK_EVENT_REVIEW_MESSAGE = "review_message"
	WEBHOOK_EVENT_REVIEW_CLOSED = "review_closed"
	WEBHOOK_EVENT_REVIEW_REOPENED = "review_reopened"
)

type WebhookReviewInfo struct {
	Id int64 `json:"id"`
	Subject string `json:"subject"`
	Owner string `json:"owner"`
	ReviewerList []string `json:"reviewers"`
	Status int `json:"status"`
	HTMLURL string `json:"html_url"`
}

type WebhookPayload struct {
	Event string `json:"event"`
	Actor string `json:"actor"`
	Message string `json:"message,omitempty"`
	Review *WebhookReviewInfo `json:"review"`
	Timestamp int64 `json:"timestamp"`
}

func resolveReviewHTMLURL(cfg *veld.VeldConfig, review *model.VeldReview) string {
	return fmt.Sprintf("%s/review/%d", cfg.ProperHTTPHostName(), review.ReviewAbsId)
}

// DeliverWebhook signs and posts one payload to the configured
// target. the receiving end checks the "Authentication" header,
// which carries an HS512 jwt over the shared secret with a
// timestamp, a nonce and a jti so a captured request cannot be
// replayed as a fresh one.
func DeliverWebhook(cfg *veld.VeldConfig, payload *WebhookPayload) error {
	nonce, err := rand.Int(rand.Reader, big.NewInt(1<<31))
	if err != nil { return errors.Wrap(err, "failed to generate webhook nonce") }
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"timestamp": time.Now().Unix(),
		"nonce": nonce.Int64(),
		"jti": uuid.NewString(),
	})
	tokenStr, err := token.SignedString([]byte(cfg.Webhook.Secret))
	if err != nil { return errors.Wrap(err, "failed to sign webhook token") }
	payloadJson, err := json.Marshal(payload)
	if err != nil { return errors.Wrap(err, "failed to serialize webhook payload") }
	req, err := http.NewRequest("POST", cfg.Webhook.TargetURL, bytes.NewReader(payloadJson))
	if err != nil { return errors.Wrap(err, "failed to build webhook request") }
	req.Header.Add("Authentication", fmt.Sprintf("webhook-jwt-%s", tokenStr))
	req.Header.Add("Content-Type", "application/json")
	timeout := cfg.Webhook.TimeoutInSecond
	if timeout <= 0 { timeout = 10 }
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	resp, err := client.Do(req)
	if err != nil { return errors.Wrap(err, "failed while sending webhook request") }
	defer resp.Body.Close()
	if !strings.HasPrefix(resp.Status, "2") {
		return errors.Errorf("erroneous http response: %s", resp.Status)
	}
	return nil
}

// FireReviewWebhook notifies the configured target about a review
// event without making the request wait on the remote end. delivery
// failures are logged and dropped; review updates must go through
// whether the remote end is healthy or not.
func (ctx *RouterContext) FireReviewWebhook(event string, review *model.VeldReview, actor string, message string) {
	if !ctx.Config.Webhook.Enabled { return }
	if len(ctx.Config.Webhook.TargetURL) <= 0 { return }
	payload := &WebhookPayload{
		Event: event,
		Actor: actor,
		Message: message,
		Review: &WebhookReviewInfo{
			Id: review.ReviewAbsId,
			Subject: review.Subject,
			Owner: review.Owner,
			ReviewerList: review.ReviewerList,
			Status: review.Status,
			HTMLURL: resolveReviewHTMLURL(ctx.Config, review),
		},
		Timestamp: time.Now().Unix(),
	}
	go func() {
		err := DeliverWebhook(ctx.Config, payload)
		if err != nil { log.ERR("webhook %s for review %d: %s", event, review.ReviewAbsId, err.Error()) }
	}()
}
