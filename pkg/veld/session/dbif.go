package session

import (
	"crypto/rand"
)

// sessions are keyed by account email. a user can hold multiple live
// sessions at once (one per browser), so the store maps an email to a
// set of session strings, each with the timestamp it was registered
// at.
type VeldSession struct {
	Email string
	Id string
	Timestamp int64
}

type VeldSessionStore interface {
	Install() error
	IsSessionStoreUsable() (bool, error)
	Dispose() error
	RegisterSession(email string, session string) error
	RetrieveSession(email string) ([]*VeldSession, error)
	RetrieveSessionByKey(email string, session string) (*VeldSession, error)
	VerifySession(email string, target string) (bool, error)
	RevokeSession(email string, target string) error
}

const sessionchdict = "abcdefghijklmnopqrstuvwxyz0123456789"

// session strings go into cookies, so they come from crypto/rand.
func NewSessionString() string {
	buf := make([]byte, 48)
	rand.Read(buf)
	res := make([]byte, 0, len(buf))
	for _, b := range buf {
		res = append(res, sessionchdict[int(b)%len(sessionchdict)])
	}
	return string(res)
}
