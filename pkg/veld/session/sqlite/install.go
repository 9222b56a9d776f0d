package sqlite

import "fmt"

func (ss *VeldSqliteSessionStore) Install() error {
	tx, err := ss.connection.Begin()
	if err != nil { return err }
	_, err = tx.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_session (
    user_email TEXT,
    value TEXT,
    reg_timestamp INTEGER
)`, ss.config.Session.TablePrefix))
	if err != nil { tx.Rollback(); return err }
	_, err = tx.Exec(fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS idx_%s_session_user_email ON %s_session(user_email)
`, ss.config.Session.TablePrefix, ss.config.Session.TablePrefix))
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { tx.Rollback(); return err }
	return nil
}
