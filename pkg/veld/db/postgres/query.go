package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/veldwork/veld/pkg/auxfuncs"
	"github.com/veldwork/veld/pkg/veld/db"
	"github.com/veldwork/veld/pkg/veld/model"
)

func (dbif *PostgresVeldDatabaseInterface) GetAccountByEmail(email string) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	stmt := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
WHERE account_email = $1
`, pfx), email)
	var nickname, ph string
	var nsel bool
	var datetime time.Time
	var status int
	var defCtx, defColw *int
	err := stmt.Scan(&nickname, &nsel, &ph, &datetime, &status, &defCtx, &defColw)
	if errors.Is(err, pgx.ErrNoRows) { return nil, db.ErrEntityNotFound }
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: nsel,
		PasswordHash: ph,
		RegisterTime: datetime.Unix(),
		Status: model.VeldAccountStatus(status),
		DefaultContext: defCtx,
		DefaultColumnWidth: defColw,
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetAccountByNickname(nickname string) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	stmt := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT account_email, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
WHERE account_nickname = $1
`, pfx), nickname)
	var email, ph string
	var nsel bool
	var datetime time.Time
	var status int
	var defCtx, defColw *int
	err := stmt.Scan(&email, &nsel, &ph, &datetime, &status, &defCtx, &defColw)
	if errors.Is(err, pgx.ErrNoRows) { return nil, db.ErrEntityNotFound }
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: nsel,
		PasswordHash: ph,
		RegisterTime: datetime.Unix(),
		Status: model.VeldAccountStatus(status),
		DefaultContext: defCtx,
		DefaultColumnWidth: defColw,
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetNicknameByEmail(email string) (string, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	stmt := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT account_nickname FROM %s_account WHERE account_email = $1
`, pfx), email)
	var nickname string
	err := stmt.Scan(&nickname)
	if errors.Is(err, pgx.ErrNoRows) { return model.EmailLocalPart(email), nil }
	if err != nil { return "", err }
	if len(nickname) <= 0 { return model.EmailLocalPart(email), nil }
	return nickname, nil
}

func (dbif *PostgresVeldDatabaseInterface) RegisterAccount(email string, nickname string, passwordHash string, status model.VeldAccountStatus) (*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT 1 FROM %s_account WHERE account_email = $1 OR account_nickname = $2
`, pfx), email, nickname)
	var verdict int
	err := r.Scan(&verdict)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) { return nil, err }
	if err == nil { return nil, db.ErrEntityAlreadyExists }
	t := time.Now()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return nil, err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s_account(account_email, account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width)
VALUES ($1, $2, FALSE, $3, $4, $5, NULL, NULL)
`, pfx), email, nickname, passwordHash, t, int(status))
	if err != nil { return nil, err }
	err = tx.Commit(ctx)
	if err != nil { return nil, err }
	return &model.VeldAccount{
		Email: email,
		Nickname: nickname,
		NicknameSelected: false,
		PasswordHash: passwordHash,
		RegisterTime: t.Unix(),
		Status: status,
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateAccountNickname(email string, newNickname string) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT 1 FROM %s_account WHERE account_nickname = $1 AND account_email <> $2
`, pfx), newNickname, email)
	var verdict int
	err := r.Scan(&verdict)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) { return err }
	if err == nil { return db.ErrEntityAlreadyExists }
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_account SET account_nickname = $1, account_nickname_selected = TRUE WHERE account_email = $2
`, pfx), newNickname, email)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateAccountViewSettings(email string, viewContext *int, columnWidth *int) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_account SET account_default_context = $1, account_default_column_width = $2 WHERE account_email = $3
`, pfx), viewContext, columnWidth, email)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateAccountPassword(email string, newPasswordHash string) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_account SET account_password_hash = $1 WHERE account_email = $2
`, pfx), newPasswordHash, email)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateAccountStatus(email string, newStatus model.VeldAccountStatus) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_account SET account_status = $1 WHERE account_email = $2
`, pfx), int(newStatus), email)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) HardDeleteAccountByEmail(email string) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
DELETE FROM %s_account WHERE account_email = $1
`, pfx), email)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) CountAllAccount() (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	var count int64
	err := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT COUNT(*) FROM %s_account
`, pfx)).Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetAllAccountPaginated(pageNum int, pageSize int) ([]*model.VeldAccount, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r, err := dbif.pool.Query(ctx, fmt.Sprintf(`
SELECT account_email, account_nickname, account_nickname_selected, account_password_hash, account_reg_datetime, account_status, account_default_context, account_default_column_width
FROM %s_account
ORDER BY account_id ASC LIMIT $1 OFFSET $2
`, pfx), pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldAccount, 0)
	for r.Next() {
		var email, nickname, ph string
		var nsel bool
		var datetime time.Time
		var status int
		var defCtx, defColw *int
		err = r.Scan(&email, &nickname, &nsel, &ph, &datetime, &status, &defCtx, &defColw)
		if err != nil { return nil, err }
		res = append(res, &model.VeldAccount{
			Email: email,
			Nickname: nickname,
			NicknameSelected: nsel,
			PasswordHash: ph,
			RegisterTime: datetime.Unix(),
			Status: model.VeldAccountStatus(status),
			DefaultContext: defCtx,
			DefaultColumnWidth: defColw,
		})
	}
	return res, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetReviewById(rid int64) (*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	stmt := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
WHERE review_abs_id = $1
`, pfx), rid)
	var subject, description, patch, owner, reviewerList, ccList string
	var status int
	var createdTime, modifiedTime time.Time
	err := stmt.Scan(&subject, &description, &patch, &owner, &reviewerList, &ccList, &status, &createdTime, &modifiedTime)
	if errors.Is(err, pgx.ErrNoRows) { return nil, db.ErrEntityNotFound }
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
		CreatedTime: createdTime.Unix(),
		ModifiedTime: modifiedTime.Unix(),
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetAllReviewPaginated(pageNum int, pageSize int) ([]*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r, err := dbif.pool.Query(ctx, fmt.Sprintf(`
SELECT review_abs_id, review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
ORDER BY review_modified_time DESC LIMIT $1 OFFSET $2
`, pfx), pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReview, 0)
	for r.Next() {
		var rid int64
		var subject, description, patch, owner, reviewerList, ccList string
		var status int
		var createdTime, modifiedTime time.Time
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
			CreatedTime: createdTime.Unix(),
			ModifiedTime: modifiedTime.Unix(),
		})
	}
	return res, nil
}

func (dbif *PostgresVeldDatabaseInterface) CountAllReview() (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	var count int64
	err := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT COUNT(*) FROM %s_review
`, pfx)).Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *PostgresVeldDatabaseInterface) GetAllReviewByOwnerPaginated(owner string, pageNum int, pageSize int) ([]*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r, err := dbif.pool.Query(ctx, fmt.Sprintf(`
SELECT review_abs_id, review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time
FROM %s_review
WHERE review_owner = $1
ORDER BY review_modified_time DESC LIMIT $2 OFFSET $3
`, pfx), owner, pageSize, pageNum * pageSize)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReview, 0)
	for r.Next() {
		var rid int64
		var subject, description, patch, rowner, reviewerList, ccList string
		var status int
		var createdTime, modifiedTime time.Time
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
			CreatedTime: createdTime.Unix(),
			ModifiedTime: modifiedTime.Unix(),
		})
	}
	return res, nil
}

func (dbif *PostgresVeldDatabaseInterface) CountAllReviewByOwner(owner string) (int64, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	var count int64
	err := dbif.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT COUNT(*) FROM %s_review WHERE review_owner = $1
`, pfx), owner).Scan(&count)
	if err != nil { return 0, err }
	return count, nil
}

func (dbif *PostgresVeldDatabaseInterface) NewReview(subject string, description string, patch string, owner string, reviewerList []string, ccList []string) (*model.VeldReview, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	t := time.Now()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return nil, err }
	defer tx.Rollback(ctx)
	var rid int64
	err = tx.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO %s_review(review_subject, review_description, review_patch, review_owner, review_reviewer_list, review_cc_list, review_status, review_created_time, review_modified_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING review_abs_id
`, pfx), subject, description, patch, owner, auxfuncs.EncodeCSV(reviewerList), auxfuncs.EncodeCSV(ccList), model.REVIEW_OPEN, t, t).Scan(&rid)
	if err != nil { return nil, err }
	err = tx.Commit(ctx)
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
		CreatedTime: t.Unix(),
		ModifiedTime: t.Unix(),
	}, nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateReviewInfo(rid int64, robj *model.VeldReview) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_review
SET review_subject = $1, review_description = $2, review_patch = $3, review_reviewer_list = $4, review_cc_list = $5, review_status = $6, review_modified_time = $7
WHERE review_abs_id = $8
`, pfx), robj.Subject, robj.Description, robj.Patch, auxfuncs.EncodeCSV(robj.ReviewerList), auxfuncs.EncodeCSV(robj.CCList), robj.Status, time.Now(), rid)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) UpdateReviewStatus(rid int64, newStatus int) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_review SET review_status = $1, review_modified_time = $2 WHERE review_abs_id = $3
`, pfx), newStatus, time.Now(), rid)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) HardDeleteReviewById(rid int64) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
DELETE FROM %s_review_message WHERE review_abs_id = $1
`, pfx), rid)
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
DELETE FROM %s_review WHERE review_abs_id = $1
`, pfx), rid)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) GetAllReviewMessage(rid int64) ([]*model.VeldReviewMessage, error) {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	r, err := dbif.pool.Query(ctx, fmt.Sprintf(`
SELECT message_abs_id, message_type, message_timestamp, message_author, message_content
FROM %s_review_message
WHERE review_abs_id = $1
ORDER BY message_abs_id ASC
`, pfx), rid)
	if err != nil { return nil, err }
	defer r.Close()
	res := make([]*model.VeldReviewMessage, 0)
	for r.Next() {
		var mid int64
		var mType int
		var timestamp time.Time
		var author, content string
		err = r.Scan(&mid, &mType, &timestamp, &author, &content)
		if err != nil { return nil, err }
		res = append(res, &model.VeldReviewMessage{
			MessageAbsId: mid,
			ReviewAbsId: rid,
			MessageType: mType,
			MessageTimestamp: timestamp.Unix(),
			MessageAuthor: author,
			MessageContent: content,
		})
	}
	return res, nil
}

func (dbif *PostgresVeldDatabaseInterface) NewReviewMessage(rid int64, mType int, author string, content string) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	t := time.Now()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s_review_message(review_abs_id, message_type, message_timestamp, message_author, message_content)
VALUES ($1, $2, $3, $4, $5)
`, pfx), rid, mType, t, author, content)
	if err != nil { return err }
	_, err = tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s_review SET review_modified_time = $1 WHERE review_abs_id = $2
`, pfx), t, rid)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}

func (dbif *PostgresVeldDatabaseInterface) HardDeleteReviewMessageById(messageAbsId int64) error {
	pfx := dbif.config.Database.TablePrefix
	ctx := context.Background()
	tx, err := dbif.pool.Begin(ctx)
	if err != nil { return err }
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, fmt.Sprintf(`
DELETE FROM %s_review_message WHERE message_abs_id = $1
`, pfx), messageAbsId)
	if err != nil { return err }
	err = tx.Commit(ctx)
	if err != nil { return err }
	return nil
}
