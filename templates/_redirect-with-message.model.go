package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type RedirectWithMessageModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Timeout int
	RedirectUrl string
	MessageTitle string
	MessageText string
}

const redirectWithMessageView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    {{if gt .Timeout 0}}<meta http-equiv="refresh" content="{{.Timeout}}; url={{.RedirectUrl}}" />{{end}}
    <title>{{.MessageTitle}} - {{.Config.SiteName}}</title>
  </head>
  <body>
    <main>
      <h2>{{.MessageTitle}}</h2>
      <p>{{.MessageText}}</p>
      <p><a href="{{.RedirectUrl}}">Click here if your browser does not redirect you.</a></p>
    </main>
  </body>
</html>`
