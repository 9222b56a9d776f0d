package init

import (
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/db/postgres"
	"github.com/veldwork/veld/pkg/veld/db/sqlite"
)

func InitializeDatabase(cfg *veld.VeldConfig) (db.VeldDatabaseInterface, error) {
	switch cfg.Database.Type {
	case "sqlite": return sqlite.NewSqliteVeldDatabaseInterface(cfg)
	case "postgres": return postgres.NewPostgresVeldDatabaseInterface(cfg)
	}
	return nil, db.ErrDatabaseNotSupported
}
