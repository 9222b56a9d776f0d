package model

type VeldReview struct {
	ReviewAbsId int64
	Subject string
	// shown on the review page, rendered as markdown.
	Description string
	// the unified diff under review, as posted.
	Patch string
	// email of the account that opened the review.
	Owner string
	// emails of the accounts asked to review.
	ReviewerList []string
	// emails cc'd on notification mails.
	CCList []string
	Status int
	CreatedTime int64
	ModifiedTime int64
}

const (
	REVIEW_OPEN = 1
	REVIEW_CLOSED = 2
)

const (
	REVIEW_EVENT_MESSAGE = 1
	REVIEW_EVENT_CLOSED = 2
	REVIEW_EVENT_REOPENED = 3
)

type VeldReviewMessage struct {
	MessageAbsId int64
	ReviewAbsId int64
	MessageType int
	MessageTimestamp int64
	// email of the sender.
	MessageAuthor string
	MessageContent string
}
