package model

import (
	"strings"
)

// an Identity is anything that can stand for a user where one is
// rendered: a raw email string or a full account record. templates
// get to pass either without caring which one they have.
type Identity interface {
	ResolveEmail() string
}

type EmailIdentity string

func (e EmailIdentity) ResolveEmail() string {
	return strings.TrimSpace(string(e))
}

func (u *VeldAccount) ResolveEmail() string {
	if u == nil { return "" }
	return u.Email
}

// EmailLocalPart returns the part of an email before the first '@',
// or the whole string when there isn't one.
func EmailLocalPart(email string) string {
	i := strings.Index(email, "@")
	if i < 0 { return email }
	return email[:i]
}

// AsEmail normalizes the kinds of values templates end up passing to
// the user funcs down to an email. the bool is false when the value
// cannot stand for a user at all (nil, empty string, unsupported
// type); the funcs render those as empty output instead of failing
// the whole page.
func AsEmail(v any) (string, bool) {
	switch k := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(k)
		if len(s) <= 0 { return "", false }
		return s, true
	case Identity:
		// NOTE: a nil *VeldAccount still arrives here as a non-nil
		// Identity; ResolveEmail handles that itself.
		s := strings.TrimSpace(k.ResolveEmail())
		if len(s) <= 0 { return "", false }
		return s, true
	}
	return "", false
}

// AsEmailList does the same for list-shaped values. unresolvable
// elements are dropped. a single non-list value resolves to a
// one-element list.
func AsEmailList(v any) []string {
	res := make([]string, 0)
	switch k := v.(type) {
	case nil:
		return res
	case []string:
		for _, i := range k {
			if s, ok := AsEmail(i); ok { res = append(res, s) }
		}
	case []EmailIdentity:
		for _, i := range k {
			if s, ok := AsEmail(i); ok { res = append(res, s) }
		}
	case []Identity:
		for _, i := range k {
			if s, ok := AsEmail(i); ok { res = append(res, s) }
		}
	case []*VeldAccount:
		for _, i := range k {
			if s, ok := AsEmail(i); ok { res = append(res, s) }
		}
	case []any:
		for _, i := range k {
			if s, ok := AsEmail(i); ok { res = append(res, s) }
		}
	default:
		if s, ok := AsEmail(v); ok { res = append(res, s) }
	}
	return res
}
