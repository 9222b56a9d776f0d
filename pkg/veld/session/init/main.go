package init

import (
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/session"
	"github.com/veldwork/veld/pkg/veld/session/memcached"
	"github.com/veldwork/veld/pkg/veld/session/redis_like"
	"github.com/veldwork/veld/pkg/veld/session/sqlite"
)

func InitializeSessionStore(cfg *veld.VeldConfig) (session.VeldSessionStore, error) {
	switch cfg.Session.Type {
	case "sqlite":
		return sqlite.NewVeldSqliteSessionStore(cfg)
	case "redis": fallthrough
	case "keydb": fallthrough
	case "valkey":
		return redis_like.NewVeldRedisLikeSessionStore(cfg)
	case "memcached":
		return memcached.NewVeldMemcachedSessionStore(cfg)
	}
	return nil, db.ErrDatabaseNotSupported
}
