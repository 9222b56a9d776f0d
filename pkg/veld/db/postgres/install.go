package postgres

import (
	"context"
	"fmt"
)

// email: VARCHAR(256)
// nickname: VARCHAR(64)
// subject: VARCHAR(512)
// long text (description, patch, message body): TEXT
// password hash: VARCHAR(256)
// timestamp: TIMESTAMP
// integer enum: SMALLINT

func (dbif *PostgresVeldDatabaseInterface) InstallTables() error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_account (
    account_id BIGINT GENERATED ALWAYS AS IDENTITY,
    account_email VARCHAR(256) UNIQUE,
    account_nickname VARCHAR(64) UNIQUE,
    account_nickname_selected BOOLEAN,
    account_password_hash VARCHAR(256),
    account_reg_datetime TIMESTAMP,
    account_status SMALLINT,
    account_default_context INTEGER,
    account_default_column_width INTEGER
)
`, pfx))
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_review (
    review_abs_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    review_subject VARCHAR(512),
    review_description TEXT,
    review_patch TEXT,
    review_owner VARCHAR(256),
    review_reviewer_list TEXT,
    review_cc_list TEXT,
    review_status SMALLINT,
    review_created_time TIMESTAMP,
    review_modified_time TIMESTAMP
)`, pfx))
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s_review_message (
    message_abs_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    review_abs_id BIGINT,
    message_type SMALLINT,
    message_timestamp TIMESTAMP,
    message_author VARCHAR(256),
    message_content TEXT,
    FOREIGN KEY (review_abs_id) REFERENCES %s_review(review_abs_id)
)`, pfx, pfx))
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS idx_%s_review_owner
ON %s_review (review_owner)
`, pfx, pfx))
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS idx_%s_review_message_review_abs_id
ON %s_review_message (review_abs_id)
`, pfx, pfx))
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}
