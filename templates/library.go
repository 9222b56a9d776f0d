package templates

import (
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/log"
	"github.com/veldwork/veld/pkg/veld/model"
)

// rendered user fragments are cached under this prefix. the write is
// create-if-absent; the settings page drops the entry when a nickname
// changes, anything else waits out the ttl.
const ShowUserCacheKeyPrefix = "show_user:"
const showUserCacheTTL = 300 * time.Second

// UserLibrary is the set of user-facing template functions that need
// the database and the cache store behind them. one instance serves
// all requests; everything per-request goes through the RequestScope
// the templates pass in explicitly.
type UserLibrary struct {
	config *veld.VeldConfig
	database db.VeldDatabaseInterface
	cache cache.VeldCacheStore
}

func NewUserLibrary(cfg *veld.VeldConfig, dbif db.VeldDatabaseInterface, cs cache.VeldCacheStore) *UserLibrary {
	return &UserLibrary{
		config: cfg,
		database: dbif,
		cache: cs,
	}
}

func flagSet(flag []string) bool {
	return len(flag) > 0 && len(strings.TrimSpace(flag[0])) > 0
}

// renders the fragment for one email, going through the cache. when
// `batchResults` is not nil it is consulted instead of an individual
// cache read, and freshly computed fragments are filled back into it
// so the same user later in one list hits in-process.
func (lib *UserLibrary) showUserInner(email string, batchResults map[string]string) template.HTML {
	var ret string
	var hit bool
	if batchResults != nil {
		ret, hit = batchResults[email]
	} else {
		v, err := lib.cache.Get(ShowUserCacheKeyPrefix + email)
		if err == nil {
			ret = v
			hit = true
		}
	}
	if !hit {
		log.DEBUG("cache miss for %s", email)
		account, err := lib.database.GetAccountByEmail(email)
		if err != nil {
			if err != db.ErrEntityNotFound {
				log.ERR("failed to fetch account of %s: %s", email, err.Error())
			}
			account = nil
		}
		if account != nil && account.NicknameSelected {
			key := html.EscapeString(account.Nickname)
			ret = fmt.Sprintf("<a href=\"/u/%s\">%s</a>", key, key)
		} else {
			// no chosen nickname means no user page. no link then.
			ret = html.EscapeString(model.EmailLocalPart(email))
		}
		lib.cache.Add(ShowUserCacheKeyPrefix + email, ret, showUserCacheTTL)
		if batchResults != nil { batchResults[email] = ret }
	}
	return template.HTML(ret)
}

func (lib *UserLibrary) showUser(scope *RequestScope, email string, neverMe bool, batchResults map[string]string) template.HTML {
	if !neverMe && scope != nil && scope.User != nil && email == scope.User.Email {
		return template.HTML("me")
	}
	return lib.showUserInner(email, batchResults)
}

// ShowUser renders one user as a safe html fragment: a link to the
// user page when the account has an explicitly chosen nickname, the
// escaped local part of the email otherwise. the current user of the
// scope renders as the literal "me"; pass a non-empty string as the
// optional flag argument to disable that.
func (lib *UserLibrary) ShowUser(scope *RequestScope, v any, flag ...string) (template.HTML, error) {
	if len(flag) > 1 { return "", fmt.Errorf("showUser requires exactly one or two arguments") }
	email, ok := model.AsEmail(v)
	if !ok { return template.HTML(""), nil }
	return lib.showUser(scope, email, flagSet(flag), nil), nil
}

// ShowUsers renders a list of users the way ShowUser renders one,
// joined with ", ". the fragments for the whole list come from a
// single batch cache read instead of one read per entry.
func (lib *UserLibrary) ShowUsers(scope *RequestScope, v any, flag ...string) (template.HTML, error) {
	if len(flag) > 1 { return "", fmt.Errorf("showUsers requires exactly one or two arguments") }
	emailList := model.AsEmailList(v)
	// no point in a batch cache call for an empty list.
	if len(emailList) <= 0 { return template.HTML(""), nil }
	neverMe := flagSet(flag)
	batchResults, err := lib.cache.GetMulti(emailList, ShowUserCacheKeyPrefix)
	if err != nil {
		log.DEBUG("batch cache read of %d keys failed: %s", len(emailList), err.Error())
		batchResults = make(map[string]string, len(emailList))
	}
	res := make([]string, 0, len(emailList))
	for _, email := range emailList {
		res = append(res, string(lib.showUser(scope, email, neverMe, batchResults)))
	}
	return template.HTML(strings.Join(res, ", ")), nil
}

// GetNickname resolves a user to a plain-text nickname: the chosen
// nickname when the account has one, the local part of the email
// otherwise. the current user of the scope resolves to "me" unless
// neverMe is set. results are memoized on the scope, so one request
// resolves each distinct user at most once; without a scope every
// call goes to the database uncached.
func (lib *UserLibrary) GetNickname(scope *RequestScope, v any, neverMe bool) string {
	email, ok := model.AsEmail(v)
	if !ok { return "" }
	if !neverMe && scope != nil && scope.User != nil && email == scope.User.Email {
		return "me"
	}
	if scope == nil {
		log.WARN("nickname lookup without a request scope goes to the database uncached")
		return lib.queryNickname(email)
	}
	memo, ok := scope.lookupNickname(email)
	if ok { return memo }
	nick := lib.queryNickname(email)
	scope.memoNickname(email, nick)
	return nick
}

func (lib *UserLibrary) queryNickname(email string) string {
	nick, err := lib.database.GetNicknameByEmail(email)
	if err != nil {
		log.ERR("failed to resolve nickname of %s: %s", email, err.Error())
		return model.EmailLocalPart(email)
	}
	return nick
}

// Nickname is the template form of GetNickname. the optional flag
// argument disables the "me" substitution when its trimmed form is
// non-empty. a value that does not resolve to an email renders as "".
func (lib *UserLibrary) Nickname(scope *RequestScope, v any, flag ...string) (string, error) {
	if len(flag) > 1 { return "", fmt.Errorf("nickname requires exactly one or two arguments") }
	return lib.GetNickname(scope, v, flagSet(flag)), nil
}

// Nicknames is Nickname over a list of users, joined with ", ".
func (lib *UserLibrary) Nicknames(scope *RequestScope, v any, flag ...string) (string, error) {
	if len(flag) > 1 { return "", fmt.Errorf("nicknames requires exactly one or two arguments") }
	neverMe := flagSet(flag)
	emailList := model.AsEmailList(v)
	res := make([]string, 0, len(emailList))
	for _, email := range emailList {
		res = append(res, lib.GetNickname(scope, email, neverMe))
	}
	return strings.Join(res, ", "), nil
}

// UrlappendViewSettings renders the query string suffix carrying the
// current diff view settings for appending right after a url:
//
//     <a href="/review/{{.Review.ReviewAbsId}}{{urlappendViewSettings .Scope}}">
//
// a nil context in live view settings means "whole file" and renders
// as "context=" so the target page knows it was set on purpose; a
// non-positive context is dropped. a scope without view settings
// renders as "".
func (lib *UserLibrary) UrlappendViewSettings(scope *RequestScope) string {
	if scope == nil || scope.ViewSettings == nil { return "" }
	vs := scope.ViewSettings
	urlParams := make([]string, 0, 2)
	if vs.Context == nil {
		urlParams = append(urlParams, "context=")
	} else if *vs.Context > 0 {
		urlParams = append(urlParams, fmt.Sprintf("context=%d", *vs.Context))
	}
	if vs.ColumnWidth != nil {
		urlParams = append(urlParams, fmt.Sprintf("column_width=%d", *vs.ColumnWidth))
	}
	if len(urlParams) <= 0 { return "" }
	return "?" + strings.Join(urlParams, "&")
}
