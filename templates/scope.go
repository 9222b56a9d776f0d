package templates

import (
	"github.com/veldwork/veld/pkg/veld/model"
)

// ViewSettings is the pair of diff view parameters a page may carry,
// either from the query string or from the account defaults. a nil
// Context means "whole file"; a nil ColumnWidth means "not set".
type ViewSettings struct {
	Context *int
	ColumnWidth *int
}

// RequestScope carries the per-request data the template library
// needs: the current user (nil when not logged in) and the view
// settings of the page being rendered. it also owns the per-request
// nickname memo, created lazily on first use and thrown away with
// the request. a scope belongs to exactly one request and is never
// shared, so none of this needs locking.
type RequestScope struct {
	User *model.VeldAccount
	ViewSettings *ViewSettings
	nicknames map[string]string
}

func (s *RequestScope) lookupNickname(email string) (string, bool) {
	if s.nicknames == nil { return "", false }
	v, ok := s.nicknames[email]
	return v, ok
}

func (s *RequestScope) memoNickname(email string, nickname string) {
	if s.nicknames == nil { s.nicknames = make(map[string]string, 0) }
	s.nicknames[email] = nickname
}

// LoginInfoModel is embedded in every page model; the header partial
// renders from it.
type LoginInfoModel struct {
	LoggedIn bool
	UserName string
	Email string
	IsAdmin bool
}

type PageInfoModel struct {
	PageNum int
	PageSize int
	TotalPage int
}
