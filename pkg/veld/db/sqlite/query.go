package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/veldwork/veld/pkg/auxfuncs"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
)

func nullToIntPtr(v sql.NullInt64) *int {
	if !v.Valid { return nil }
	r := int(v.Int64)
	return &r
}

func intPtrToNull(p *int) sql.NullInt64 {
	if p == nil { return sql.NullInt64{} }
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func (dbif *SqliteVeldDatabaseInterface) GetAccountByEmail(email string) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
WHERE account_email = ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	var nickname, ph string
	var nsel, status int
	var regTime int64
	var defCtx, defColw sql.NullInt64
	err = stmt.QueryRow(email).Scan(&nickname, &nsel, &ph, &regTime, &status, &defCtx, &defColw)
	if err == sql.ErrNoRows { return nil, db.ErrEntityNotFound }
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: nsel != 0,
		PasswordHash: ph,
		RegisterTime: regTime,
		Status: model.VeldAccountStatus(status),
		DefaultContext: nullToIntPtr(defCtx),
		DefaultColumnWidth: nullToIntPtr(defColw),
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetAccountByNickname(nickname string) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT account_email, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
WHERE account_nickname = ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	var email, ph string
	var nsel, status int
	var regTime int64
	var defCtx, defColw sql.NullInt64
	err = stmt.QueryRow(nickname).Scan(&email, &nsel, &ph, &regTime, &status, &defCtx, &defColw)
	if err == sql.ErrNoRows { return nil, db.ErrEntityNotFound }
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: nsel != 0,
		PasswordHash: ph,
		RegisterTime: regTime,
		Status: model.VeldAccountStatus(status),
		DefaultContext: nullToIntPtr(defCtx),
		DefaultColumnWidth: nullToIntPtr(defColw),
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetNicknameByEmail(email string) (string, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT account_nickname FROM %s_account WHERE account_email = ?
`, pfx))
	if err != nil { return "", err }
	defer stmt.Close()
	var nickname string
	err = stmt.QueryRow(email).Scan(&nickname)
	if err == sql.ErrNoRows { return model.EmailLocalPart(email), nil }
	if err != nil { return "", err }
	if len(nickname) <= 0 { return model.EmailLocalPart(email), nil }
	return nickname, nil
}

func (dbif *SqliteVeldDatabaseInterface) RegisterAccount(email string, nickname string, passwordHash string, status model.VeldAccountStatus) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt1, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT 1 FROM %s_account WHERE account_email = ? OR account_nickname = ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt1.Close()
	r := stmt1.QueryRow(email, nickname)
	if r.Err() != nil { return nil, r.Err() }
	var verdict string
	err = r.Scan(&verdict)
	if err != nil && err != sql.ErrNoRows { return nil, err }
	if err == nil { return nil, db.ErrEntityAlreadyExists }
	regTime := time.Now().Unix()
	tx, err := dbif.connection.Begin()
	if err != nil { return nil, err }
	stmt2, err := tx.Prepare(fmt.Sprintf(`
INSERT INTO %s_account(account_email, account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width)
VALUES (?,?,0,?,?,?,NULL,NULL)
`, pfx))
	if err != nil { tx.Rollback(); return nil, err }
	_, err = stmt2.Exec(email, nickname, passwordHash, regTime, int(status))
	if err != nil { tx.Rollback(); return nil, err }
	err = tx.Commit()
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: false,
		PasswordHash: passwordHash,
		RegisterTime: regTime,
		Status: status,
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateAccountNickname(email string, newNickname string) error {
	pfx := dbif.config.Database.TablePrefix
	stmt1, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT 1 FROM %s_account WHERE account_nickname = ? AND account_email <> ?
`, pfx))
	if err != nil { return err }
	defer stmt1.Close()
	r := stmt1.QueryRow(newNickname, email)
	if r.Err() != nil { return r.Err() }
	var verdict string
	err = r.Scan(&verdict)
	if err != nil && err != sql.ErrNoRows { return err }
	if err == nil { return db.ErrEntityAlreadyExists }
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt2, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_account SET account_nickname = ?, account_nickname_selected = 1 WHERE account_email = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt2.Exec(newNickname, email)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateAccountViewSettings(email string, context *int, columnWidth *int) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_account SET account_default_context = ?, account_default_column_width = ? WHERE account_email = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(intPtrToNull(context), intPtrToNull(columnWidth), email)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateAccountPassword(email string, newPasswordHash string) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_account SET account_password_hash = ? WHERE account_email = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(newPasswordHash, email)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateAccountStatus(email string, newStatus model.VeldAccountStatus) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_account SET account_status = ? WHERE account_email = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(int(newStatus), email)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) HardDeleteAccountByEmail(email string) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
DELETE FROM %s_account WHERE account_email = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(email)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) CountAllAccount() (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT COUNT(*) FROM %s_account
`, pfx))
	if err != nil { return 0, err }
	defer stmt.Close()
	var count int64
	err = stmt.QueryRow().Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetAllAccountPaginated(pageNum int, pageSize int) ([]*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT account_email, account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
ORDER BY rowid ASC LIMIT ? OFFSET ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	r, err := stmt.Query(pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldAccount, 0)
	for r.Next() {
		var email, nickname, ph string
		var nsel, status int
		var regTime int64
		var defCtx, defColw sql.NullInt64
		err = r.Scan(&email, &nickname, &nsel, &ph, &regTime, &status, &defCtx, &defColw)
		if err != nil { return nil, err }
		res = append(res, &model.VeldAccount{
			Email: email,
			Nickname: nickname,
			NicknameSelected: nsel != 0,
			PasswordHash: ph,
			RegisterTime: regTime,
			Status: model.VeldAccountStatus(status),
			DefaultContext: nullToIntPtr(defCtx),
			DefaultColumnWidth: nullToIntPtr(defColw),
		})
	}
	return res, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetReviewById(rid int64) (*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
WHERE review_abs_id = ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	var subject, description, patch, owner, reviewerList, ccList string
	var status int
	var createdTime, modifiedTime int64
	err = stmt.QueryRow(rid).Scan(&subject, &description, &patch, &owner, &reviewerList, &ccList, &status, &createdTime, &modifiedTime)
	if err == sql.ErrNoRows { return nil, db.ErrEntityNotFound }
	if err != nil { return nil, err }
	return &model.VeldReview{
		ReviewAbsId: rid,
		Subject: subject,
		Description: description,
		Patch: patch,
		Owner: owner,
		ReviewerList: auxfuncs.ParseCSV(reviewerList),
		CCList: auxfuncs.ParseCSV(ccList),
		Status: status,
		CreatedTime: createdTime,
		ModifiedTime: modifiedTime,
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetAllReviewPaginated(pageNum int, pageSize int) ([]*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT review_abs_id, review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
ORDER BY review_modified_time DESC LIMIT ? OFFSET ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	r, err := stmt.Query(pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReview, 0)
	for r.Next() {
		var rid, createdTime, modifiedTime int64
		var subject, description, patch, owner, reviewerList, ccList string
		var status int
		err = r.Scan(&rid, &subject, &description, &patch, &owner, &reviewerList, &ccList, &status, &createdTime, &modifiedTime)
		if err != nil { return nil, err }
		res = append(res, &model.VeldReview{
			ReviewAbsId: rid,
			Subject: subject,
			Description: description,
			Patch: patch,
			Owner: owner,
			ReviewerList: auxfuncs.ParseCSV(reviewerList),
			CCList: auxfuncs.ParseCSV(ccList),
			Status: status,
			CreatedTime: createdTime,
			ModifiedTime: modifiedTime,
		})
	}
	return res, nil
}

func (dbif *SqliteVeldDatabaseInterface) CountAllReview() (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT COUNT(*) FROM %s_review
`, pfx))
	if err != nil { return 0, err }
	defer stmt.Close()
	var count int64
	err = stmt.QueryRow().Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *SqliteVeldDatabaseInterface) GetAllReviewByOwnerPaginated(owner string, pageNum int, pageSize int) ([]*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT review_abs_id, review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
WHERE review_owner = ?
ORDER BY review_modified_time DESC LIMIT ? OFFSET ?
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	r, err := stmt.Query(owner, pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReview, 0)
	for r.Next() {
		var rid, createdTime, modifiedTime int64
		var subject, description, patch, rowner, reviewerList, ccList string
		var status int
		err = r.Scan(&rid, &subject, &description, &patch, &rowner, &reviewerList, &ccList, &status, &createdTime, &modifiedTime)
		if err != nil { return nil, err }
		res = append(res, &model.VeldReview{
			ReviewAbsId: rid,
			Subject: subject,
			Description: description,
			Patch: patch,
			Owner: rowner,
			ReviewerList: auxfuncs.ParseCSV(reviewerList),
			CCList: auxfuncs.ParseCSV(ccList),
			Status: status,
			CreatedTime: createdTime,
			ModifiedTime: modifiedTime,
		})
	}
	return res, nil
}

func (dbif *SqliteVeldDatabaseInterface) CountAllReviewByOwner(owner string) (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT COUNT(*) FROM %s_review WHERE review_owner = ?
`, pfx))
	if err != nil { return 0, err }
	defer stmt.Close()
	var count int64
	err = stmt.QueryRow(owner).Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *SqliteVeldDatabaseInterface) NewReview(subject string, description string, patch string, owner string, reviewerList []string, ccList []string) (*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	t := time.Now().Unix()
	tx, err := dbif.connection.Begin()
	if err != nil { return nil, err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
INSERT INTO %s_review(review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time)
VALUES (?,?,?,?,?,?,?,?,?)
`, pfx))
	if err != nil { tx.Rollback(); return nil, err }
	r, err := stmt.Exec(subject, description, patch, owner, auxfuncs.EncodeCSV(reviewerList), auxfuncs.EncodeCSV(ccList), model.REVIEW_OPEN, t, t)
	if err != nil { tx.Rollback(); return nil, err }
	rid, err := r.LastInsertId()
	if err != nil { tx.Rollback(); return nil, err }
	err = tx.Commit()
	if err != nil { return nil, err }
	return &model.VeldReview{
		ReviewAbsId: rid,
		Subject: subject,
		Description: description,
		Patch: patch,
		Owner: owner,
		ReviewerList: reviewerList,
		CCList: ccList,
		Status: model.REVIEW_OPEN,
		CreatedTime: t,
		ModifiedTime: t,
	}, nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateReviewInfo(rid int64, robj *model.VeldReview) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_review
SET review_subject = ?, review_description = ?, review_patch = ?, review_reviewer_list = ?, review_cc_list = ?, review_status = ?, review_modified_time = ?
WHERE review_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(robj.Subject, robj.Description, robj.Patch, auxfuncs.EncodeCSV(robj.ReviewerList), auxfuncs.EncodeCSV(robj.CCList), robj.Status, time.Now().Unix(), rid)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) UpdateReviewStatus(rid int64, newStatus int) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_review SET review_status = ?, review_modified_time = ? WHERE review_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(newStatus, time.Now().Unix(), rid)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) HardDeleteReviewById(rid int64) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt1, err := tx.Prepare(fmt.Sprintf(`
DELETE FROM %s_review_message WHERE review_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt1.Exec(rid)
	if err != nil { tx.Rollback(); return err }
	stmt2, err := tx.Prepare(fmt.Sprintf(`
DELETE FROM %s_review WHERE review_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt2.Exec(rid)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) GetAllReviewMessage(rid int64) ([]*model.VeldReviewMessage, error) {
	pfx := dbif.config.Database.TablePrefix
	stmt, err := dbif.connection.Prepare(fmt.Sprintf(`
SELECT message_abs_id, message_type, message_timestamp, message_author, message_content
FROM %s_review_message
WHERE review_abs_id = ?
ORDER BY message_abs_id ASC
`, pfx))
	if err != nil { return nil, err }
	defer stmt.Close()
	r, err := stmt.Query(rid)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReviewMessage, 0)
	for r.Next() {
		var mid, timestamp int64
		var mType int
		var author, content string
		err = r.Scan(&mid, &mType, &timestamp, &author, &content)
		if err != nil { return nil, err }
		res = append(res, &model.VeldReviewMessage{
			MessageAbsId: mid,
			ReviewAbsId: rid,
			MessageType: mType,
			MessageTimestamp: timestamp,
			MessageAuthor: author,
			MessageContent: content,
		})
	}
	return res, nil
}

func (dbif *SqliteVeldDatabaseInterface) NewReviewMessage(rid int64, mType int, author string, content string) error {
	pfx := dbif.config.Database.TablePrefix
	t := time.Now().Unix()
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt1, err := tx.Prepare(fmt.Sprintf(`
INSERT INTO %s_review_message(review_abs_id, message_type, message_timestamp, message_author, message_content)
VALUES (?,?,?,?,?)
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt1.Exec(rid, mType, t, author, content)
	if err != nil { tx.Rollback(); return err }
	stmt2, err := tx.Prepare(fmt.Sprintf(`
UPDATE %s_review SET review_modified_time = ? WHERE review_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt2.Exec(t, rid)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}

func (dbif *SqliteVeldDatabaseInterface) HardDeleteReviewMessageById(messageAbsId int64) error {
	pfx := dbif.config.Database.TablePrefix
	tx, err := dbif.connection.Begin()
	if err != nil { return err }
	stmt, err := tx.Prepare(fmt.Sprintf(`
DELETE FROM %s_review_message WHERE message_abs_id = ?
`, pfx))
	if err != nil { tx.Rollback(); return err }
	_, err = stmt.Exec(messageAbsId)
	if err != nil { tx.Rollback(); return err }
	err = tx.Commit()
	if err != nil { return err }
	return nil
}
