package smtp_plain

import (
	gomail "github.com/wneessen/go-mail"
)

type VeldSMTPPlainMailerInterface struct {
	username string
	appPassword string
	client *gomail.Client
}

func NewVeldSMTPPlainMailerInterface(host string, port int, auth string, username string, appPassword string) (*VeldSMTPPlainMailerInterface, error) {
	authType := gomail.SMTPAuthAutoDiscover
	if len(auth) > 0 { authType = gomail.SMTPAuthType(auth) }
	cl, err := gomail.NewClient(host, gomail.WithPort(port), gomail.WithSMTPAuth(authType), gomail.WithUsername(username), gomail.WithPassword(appPassword))
	if err != nil { return nil, err }
	return &VeldSMTPPlainMailerInterface{
		username: username,
		appPassword: appPassword,
		client: cl,
	}, nil
}

func (mi *VeldSMTPPlainMailerInterface) SendPlainTextMail(target string, title string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(mi.username); err != nil { return err }
	if err := msg.To(target); err != nil { return err }
	msg.Subject(title)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return mi.client.DialAndSend(msg)
}

func (mi *VeldSMTPPlainMailerInterface) SendHTMLMail(target string, title string, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(mi.username); err != nil { return err }
	if err := msg.To(target); err != nil { return err }
	msg.Subject(title)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return mi.client.DialAndSend(msg)
}
