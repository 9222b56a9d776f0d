package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/session"
)

type VeldSqliteSessionStore struct {
	config *veld.VeldConfig
	connection *sql.DB
}

func NewVeldSqliteSessionStore(cfg *veld.VeldConfig) (*VeldSqliteSessionStore, error) {
	db, err := sql.Open("sqlite3", cfg.ProperSessionPath())
	if err != nil { return nil, err }
	return &VeldSqliteSessionStore{
		config: cfg,
		connection: db,
	}, nil
}

func (ss *VeldSqliteSessionStore) Dispose() error {
	return ss.connection.Close()
}

func (ss *VeldSqliteSessionStore) IsSessionStoreUsable() (bool, error) {
	tableName := fmt.Sprintf("%s_session", ss.config.Session.TablePrefix)
	stmt, err := ss.connection.Prepare("SELECT 1 FROM sqlite_schema WHERE type = 'table' AND name = ?")
	if err != nil { return false, err }
	defer stmt.Close()
	r := stmt.QueryRow(tableName)
	if r.Err() != nil { return false, r.Err() }
	var x string
	err = r.Scan(&x)
	if err == sql.ErrNoRows { return false, nil }
	if err != nil { return false, err }
	if len(x) <= 0 { return false, nil }
	return true, nil
}

func (ss *VeldSqliteSessionStore) RegisterSession(email string, sessionid string) error {
	tx, err := ss.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s_session(user_email, value, reg_timestamp) VALUES (?,?,?)", ss.config.Session.TablePrefix))
	if err != nil { tx.Rollback(); return err }
	defer stmt.Close()
	_, err = stmt.Exec(email, sessionid, time.Now().UnixMilli())
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { tx.Rollback(); return err }
	return nil
}

func (ss *VeldSqliteSessionStore) RetrieveSession(email string) ([]*session.VeldSession, error) {
	stmt, err := ss.connection.Prepare(fmt.Sprintf("SELECT value, reg_timestamp FROM %s_session WHERE user_email = ?", ss.config.Session.TablePrefix))
	if err != nil { return nil, err }
	defer stmt.Close()
	r, err := stmt.Query(email)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*session.VeldSession, 0)
	for r.Next() {
		var id string
		var timestamp int64
		err = r.Scan(&id, &timestamp)
		if err != nil { return nil, err }
		res = append(res, &session.VeldSession{
			Email: email,
			Id: id,
			Timestamp: timestamp,
		})
	}
	return res, nil
}

func (ss *VeldSqliteSessionStore) RetrieveSessionByKey(email string, key string) (*session.VeldSession, error) {
	stmt, err := ss.connection.Prepare(fmt.Sprintf("SELECT reg_timestamp FROM %s_session WHERE user_email = ? AND value = ?", ss.config.Session.TablePrefix))
	if err != nil { return nil, err }
	defer stmt.Close()
	r := stmt.QueryRow(email, key)
	if r.Err() != nil { return nil, r.Err() }
	var timestamp int64
	err = r.Scan(&timestamp)
	if err != nil { return nil, err }
	return &session.VeldSession{
		Email: email,
		Id: key,
		Timestamp: timestamp,
	}, nil
}

func (ss *VeldSqliteSessionStore) VerifySession(email string, target string) (bool, error) {
	stmt, err := ss.connection.Prepare(fmt.Sprintf("SELECT 1 FROM %s_session WHERE user_email = ? AND value = ?", ss.config.Session.TablePrefix))
	if err != nil { return false, err }
	defer stmt.Close()
	s := ""
	err = stmt.QueryRow(email, target).Scan(&s)
	if err == sql.ErrNoRows { return false, nil }
	if err != nil { return false, err }
	return (len(s) > 0), nil
}

func (ss *VeldSqliteSessionStore) RevokeSession(email string, target string) error {
	tx, err := ss.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf("DELETE FROM %s_session WHERE user_email = ? AND value = ?", ss.config.Session.TablePrefix))
	if err != nil { tx.Rollback(); return err }
	defer stmt.Close()
	_, err = stmt.Exec(email, target)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { tx.Rollback(); return err }
	return nil
}
