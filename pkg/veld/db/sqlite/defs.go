package sqlite

import (
	"database/sql"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
	"github.com/veldwork/veld/pkg/veld"
)

type SqliteVeldDatabaseInterface struct {
	config *veld.VeldConfig
	connection *sql.DB
}

var requiredTableList = []string{
	"account",
	"review",
	"review_message",
}

func (dbif *SqliteVeldDatabaseInterface) IsDatabaseUsable() (bool, error) {
	stmt, err := dbif.connection.Prepare("SELECT 1 FROM sqlite_schema WHERE type = 'table' AND name = ?")
	if err != nil { return false, err }
	defer stmt.Close()
	for _, item := range requiredTableList {
		tableName := dbif.config.Database.TablePrefix + "_" + item
		r := stmt.QueryRow(tableName)
		if r.Err() != nil { return false, r.Err() }
		var a string
		err := r.Scan(&a)
		if err == sql.ErrNoRows { return false, nil }
		if err != nil { return false, err }
		if len(a) <= 0 { return false, nil }
	}
	return true, nil
}

func NewSqliteVeldDatabaseInterface(cfg *veld.VeldConfig) (*SqliteVeldDatabaseInterface, error) {
	p := cfg.ProperDatabasePath()
	r, _ := url.Parse(p)
	q := r.Query()
	q.Set("cache", "shared")
	q.Set("mode", "rwc")
	q.Set("_journal_mode", "WAL")
	r.RawQuery = q.Encode()
	conn, err := sql.Open("sqlite3", r.String())
	if err != nil { return nil, err }
	return &SqliteVeldDatabaseInterface{
		config: cfg,
		connection: conn,
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) Dispose() error {
	return dbif.connection.Close()
}
