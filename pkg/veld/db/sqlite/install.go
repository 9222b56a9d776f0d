package sqlite

import "fmt"

func (dbif *SqliteVeldDatabaseInterface) InstallTables() error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	_, err = tx.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_account (
    account_email TEXT UNIQUE,
    account_nickname TEXT UNIQUE,
    account_nickname_selected INTEGER,
    account_password_hash TEXT,
    account_reg_datetime INTEGER,
    account_status INTEGER,
    account_default_context INTEGER,
    account_default_column_width INTEGER
)`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = tx.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_review (
    review_abs_id INTEGER PRIMARY KEY AUTOINCREMENT,
    review_subject TEXT,
    review_description TEXT,
    review_patch TEXT,
    review_owner TEXT,
    review_reviewer_list TEXT,
    review_cc_list TEXT,
    review_status INTEGER,
    review_created_time INTEGER,
    review_modified_time INTEGER
)`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = tx.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_review_message (
    message_abs_id INTEGER PRIMARY KEY AUTOINCREMENT,
    review_abs_id INTEGER,
    message_type INTEGER,
    message_timestamp INTEGER,
    message_author TEXT,
    message_content TEXT,
    FOREIGN KEY (review_abs_id) REFERENCES %s_review(review_abs_id)
)`, pfx, pfx))
	if err != nil { tx.Rollback(); return err }

	_, err = tx.Exec(fmt.Sprintf(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_account_email
ON %s_account (account_email)
`, pfx, pfx))
	if err != nil { tx.Rollback(); return err }

	_, err = tx.Exec(fmt.Sprintf(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_account_nickname
ON %s_account (account_nickname)
`, pfx, pfx))
	if err != nil { tx.Rollback(); return err }

	_, err = tx.Exec(fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS idx_%s_review_owner
ON %s_review (review_owner)
`, pfx, pfx))
	if err != nil { tx.Rollback(); return err }

	_, err = tx.Exec(fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS idx_%s_review_message_review_abs_id
ON %s_review_message (review_abs_id)
`, pfx, pfx))
	if err != nil { tx.Rollback(); return err }

	tx.Commit()
	return nil
}
