package memcached

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/session"
)

type VeldMemcachedSessionStore struct {
	config *veld.VeldConfig
	connection *memcache.Client
}

func NewVeldMemcachedSessionStore(cfg *veld.VeldConfig) (*VeldMemcachedSessionStore, error) {
	c := memcache.New(cfg.Session.Host)
	return &VeldMemcachedSessionStore{
		config: cfg,
		connection: c,
	}, nil
}

func (ssif *VeldMemcachedSessionStore) Install() error {
	return nil
}

func (ssif *VeldMemcachedSessionStore) IsSessionStoreUsable() (bool, error) {
	err := ssif.connection.Ping()
	if err != nil { return false, err }
	return true, nil
}

func (ssif *VeldMemcachedSessionStore) Dispose() error {
	return nil
}

// memcached has no native sets, so the set of session ids of one user
// lives as one comma-joined string. session ids come from
// NewSessionString and thus never contain commas themselves. the 1MB
// value size limit is far beyond what any realistic number of live
// sessions per user would ever reach.
func insertSet(set []byte, s string) []byte {
	if inSet(set, s) { return set }
	if len(set) <= 0 { return []byte(s) }
	return fmt.Appendf(set, ",%s", s)
}
func inSet(set []byte, s string) bool {
	if len(set) <= 0 { return false }
	for item := range strings.SplitSeq(string(set), ",") {
		if item == s { return true }
	}
	return false
}
func removeFromSet(set []byte, s string) []byte {
	ss := strings.Split(string(set), ",")
	targetI := -1
	for i, k := range ss {
		if k == s { targetI = i; break }
	}
	if targetI == -1 { return set }
	ress := slices.Delete(ss, targetI, targetI+1)
	return []byte(strings.Join(ress, ","))
}

func (ssif *VeldMemcachedSessionStore) sessionSetKey(email string) string {
	return fmt.Sprintf("%s:%s:session", ssif.config.Session.TablePrefix, email)
}

func (ssif *VeldMemcachedSessionStore) sessionKey(email string, sessionid string) string {
	return fmt.Sprintf("%s:%s:session:%s", ssif.config.Session.TablePrefix, email, sessionid)
}

func (ssif *VeldMemcachedSessionStore) RegisterSession(email string, sessionid string) error {
	setKey := ssif.sessionSetKey(email)
	i, err := ssif.connection.Get(setKey)
	if err != nil {
		// cache miss is memcached's way of saying the key not found...
		if err != memcache.ErrCacheMiss { return err }
		i = &memcache.Item{
			Key: setKey,
			Value: []byte(sessionid),
			Flags: 0,
			Expiration: 0,
		}
	} else {
		i.Value = insertSet(i.Value, sessionid)
	}
	err = ssif.connection.Set(i)
	if err != nil { return err }
	// each session id also gets its own key holding the registration
	// timestamp so that a single session can be checked without
	// splitting the whole set string.
	timestampStr := fmt.Sprintf("%d", time.Now().UnixMilli())
	err = ssif.connection.Set(&memcache.Item{
		Key: ssif.sessionKey(email, sessionid),
		Value: []byte(timestampStr),
		Flags: 0,
		Expiration: 0,
	})
	if err != nil { return err }
	return nil
}

func (ssif *VeldMemcachedSessionStore) RetrieveSession(email string) ([]*session.VeldSession, error) {
	i, err := ssif.connection.Get(ssif.sessionSetKey(email))
	res := make([]*session.VeldSession, 0)
	if err == memcache.ErrCacheMiss { return res, nil }
	if err != nil { return nil, err }
	for k := range strings.SplitSeq(string(i.Value), ",") {
		v, err := ssif.connection.Get(ssif.sessionKey(email, k))
		var val string
		if err != nil {
			val = "0"
		} else {
			val = string(v.Value)
		}
		timestamp, _ := strconv.ParseInt(val, 10, 64)
		res = append(res, &session.VeldSession{
			Email: email,
			Id: k,
			Timestamp: timestamp,
		})
	}
	return res, nil
}

func (ssif *VeldMemcachedSessionStore) RetrieveSessionByKey(email string, sessionid string) (*session.VeldSession, error) {
	i, err := ssif.connection.Get(ssif.sessionKey(email, sessionid))
	if err != nil { return nil, err }
	timestamp, _ := strconv.ParseInt(string(i.Value), 10, 64)
	return &session.VeldSession{
		Email: email,
		Id: sessionid,
		Timestamp: timestamp,
	}, nil
}

func (ssif *VeldMemcachedSessionStore) VerifySession(email string, target string) (bool, error) {
	i, err := ssif.connection.Get(ssif.sessionKey(email, target))
	if err == memcache.ErrCacheMiss { return false, nil }
	if err != nil { return false, err }
	if len(i.Value) <= 0 { return false, nil }
	return true, nil
}

func (ssif *VeldMemcachedSessionStore) RevokeSession(email string, target string) error {
	// NOTE: no transaction semantics here. a crash between the two
	// writes leaves the set entry behind, but a dangling set entry
	// with no timestamp key fails VerifySession anyway.
	err := ssif.connection.Delete(ssif.sessionKey(email, target))
	if err != nil && err != memcache.ErrCacheMiss { return err }
	setKey := ssif.sessionSetKey(email)
	i, err := ssif.connection.Get(setKey)
	if err == memcache.ErrCacheMiss { return nil }
	if err != nil { return err }
	i.Value = removeFromSet(i.Value, target)
	err = ssif.connection.Set(i)
	if err != nil { return err }
	return nil
}
