package mail

import (
	"errors"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/mail/gmail_plain"
	"github.com/veldwork/veld/pkg/veld/mail/smtp_plain"
)

type VeldMailerInterface interface {
	SendPlainTextMail(target string, title string, body string) error
	SendHTMLMail(target string, title string, body string) error
}

var ErrNotSupported = errors.New("mailer type not supported")

func InitializeMailer(cfg *veld.VeldConfig) (VeldMailerInterface, error) {
	return CreateMailerFromMailerConfig(&cfg.Mailer)
}

func CreateMailerFromMailerConfig(cfg *veld.VeldMailerConfig) (VeldMailerInterface, error) {
	switch cfg.Type {
	case "gmail-plain":
		return gmail_plain.NewVeldGmailPlainMailerInterface(cfg.User, cfg.Password)
	case "smtp-plain":
		return smtp_plain.NewVeldSMTPPlainMailerInterface(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPAuth, cfg.User, cfg.Password)
	}
	return nil, ErrNotSupported
}
