package gmail_plain

import (
	gomail "github.com/wneessen/go-mail"
)

// gmail with an app-specific password. the server location and auth
// type are fixed by google, so only the credentials are configurable.
type VeldGmailPlainMailerInterface struct {
	username string
	appPassword string
	client *gomail.Client
}

func NewVeldGmailPlainMailerInterface(username string, appPassword string) (*VeldGmailPlainMailerInterface, error) {
	cl, err := gomail.NewClient("smtp.gmail.com", gomail.WithPort(587), gomail.WithSMTPAuth(gomail.SMTPAuthPlain), gomail.WithUsername(username), gomail.WithPassword(appPassword))
	if err != nil { return nil, err }
	return &VeldGmailPlainMailerInterface{
		username: username,
		appPassword: appPassword,
		client: cl,
	}, nil
}

func (mi *VeldGmailPlainMailerInterface) SendPlainTextMail(target string, title string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(mi.username); err != nil { return err }
	if err := msg.To(target); err != nil { return err }
	msg.Subject(title)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return mi.client.DialAndSend(msg)
}

func (mi *VeldGmailPlainMailerInterface) SendHTMLMail(target string, title string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(mi.username); err != nil { return err }
	if err := msg.To(target); err != nil { return err }
	msg.Subject(title)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return mi.client.DialAndSend(msg)
}
