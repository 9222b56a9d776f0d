package redis_like

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/session"
)

// covers redis and things that speak its protocol (keydb, valkey).
// the sessions of one user live in a single hash whose fields are the
// session ids and whose values are registration timestamps.
type VeldRedisLikeSessionStore struct {
	config *veld.VeldConfig
	connection *redis.Client
}

func NewVeldRedisLikeSessionStore(cfg *veld.VeldConfig) (*VeldRedisLikeSessionStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr: cfg.Session.Host,
		Username: cfg.Session.UserName,
		Password: cfg.Session.Password,
		DB: cfg.Session.DatabaseNumber,
	})
	return &VeldRedisLikeSessionStore{
		config: cfg,
		connection: c,
	}, nil
}

func (ssif *VeldRedisLikeSessionStore) sessionSetKey(email string) string {
	return fmt.Sprintf("%s:%s:session", ssif.config.Session.TablePrefix, email)
}

func (ssif *VeldRedisLikeSessionStore) Install() error {
	return nil
}

func (ssif *VeldRedisLikeSessionStore) IsSessionStoreUsable() (bool, error) {
	cmd := ssif.connection.Ping(context.TODO())
	if cmd.Err() != nil { return false, cmd.Err() }
	return true, nil
}

func (ssif *VeldRedisLikeSessionStore) Dispose() error {
	return ssif.connection.Close()
}

func (ssif *VeldRedisLikeSessionStore) RegisterSession(email string, sessionid string) error {
	timestampStr := fmt.Sprintf("%d", time.Now().UnixMilli())
	r1 := ssif.connection.HSet(context.TODO(), ssif.sessionSetKey(email), sessionid, timestampStr)
	if r1.Err() != nil { return r1.Err() }
	return nil
}

func (ssif *VeldRedisLikeSessionStore) RetrieveSession(email string) ([]*session.VeldSession, error) {
	cmd := ssif.connection.HGetAll(context.TODO(), ssif.sessionSetKey(email))
	if cmd.Err() != nil { return nil, cmd.Err() }
	res := make([]*session.VeldSession, 0)
	for k, v := range cmd.Val() {
		timestamp, _ := strconv.ParseInt(v, 10, 64)
		res = append(res, &session.VeldSession{
			Email: email,
			Id: k,
			Timestamp: timestamp,
		})
	}
	return res, nil
}

func (ssif *VeldRedisLikeSessionStore) RetrieveSessionByKey(email string, sessionid string) (*session.VeldSession, error) {
	cmd := ssif.connection.HGet(context.TODO(), ssif.sessionSetKey(email), sessionid)
	if cmd.Err() != nil { return nil, cmd.Err() }
	timestamp, _ := strconv.ParseInt(cmd.Val(), 10, 64)
	return &session.VeldSession{
		Email: email,
		Id: sessionid,
		Timestamp: timestamp,
	}, nil
}

func (ssif *VeldRedisLikeSessionStore) VerifySession(email string, target string) (bool, error) {
	cmd := ssif.connection.HGet(context.TODO(), ssif.sessionSetKey(email), target)
	if cmd.Err() == redis.Nil { return false, nil }
	if cmd.Err() != nil { return false, cmd.Err() }
	r, err := cmd.Result()
	if err != nil { return false, err }
	if len(r) <= 0 { return false, nil }
	return true, nil
}

func (ssif *VeldRedisLikeSessionStore) RevokeSession(email string, target string) error {
	cmd := ssif.connection.HDel(context.TODO(), ssif.sessionSetKey(email), target)
	if cmd.Err() != nil { return cmd.Err() }
	return nil
}
