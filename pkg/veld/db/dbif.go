package db

import "github.com/veldwork/veld/pkg/veld/model"

type VeldDatabaseInterface interface {
	// we have to discern between "database unusable" and "error while detecting".
	IsDatabaseUsable() (bool, error)
	InstallTables() error
	Dispose() error

	GetAccountByEmail(email string) (*model.VeldAccount, error)
	GetAccountByNickname(nickname string) (*model.VeldAccount, error)
	// the display name for an email: the nickname of the account the
	// email belongs to when there is one, the local part of the email
	// when there isn't. never fails with ErrEntityNotFound.
	GetNicknameByEmail(email string) (string, error)
	RegisterAccount(email string, nickname string, passwordHash string, status model.VeldAccountStatus) (*model.VeldAccount, error)
	// sets the nickname and marks it as explicitly chosen.
	UpdateAccountNickname(email string, newNickname string) error
	// nil means NULL, i.e. "whole file" for context and "site
	// default" for column width.
	UpdateAccountViewSettings(email string, context *int, columnWidth *int) error
	UpdateAccountPassword(email string, newPasswordHash string) error
	UpdateAccountStatus(email string, newStatus model.VeldAccountStatus) error
	HardDeleteAccountByEmail(email string) error
	CountAllAccount() (int64, error)
	GetAllAccountPaginated(pageNum int, pageSize int) ([]*model.VeldAccount, error)

	GetReviewById(rid int64) (*model.VeldReview, error)
	GetAllReviewPaginated(pageNum int, pageSize int) ([]*model.VeldReview, error)
	CountAllReview() (int64, error)
	GetAllReviewByOwnerPaginated(owner string, pageNum int, pageSize int) ([]*model.VeldReview, error)
	CountAllReviewByOwner(owner string) (int64, error)
	NewReview(subject string, description string, patch string, owner string, reviewerList []string, ccList []string) (*model.VeldReview, error)
	UpdateReviewInfo(rid int64, robj *model.VeldReview) error
	UpdateReviewStatus(rid int64, newStatus int) error
	HardDeleteReviewById(rid int64) error

	GetAllReviewMessage(rid int64) ([]*model.VeldReviewMessage, error)
	NewReviewMessage(rid int64, mType int, author string, content string) error
	HardDeleteReviewMessageById(messageAbsId int64) error
}
