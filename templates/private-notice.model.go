package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type PrivateNoticeTemplateModel struct{
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Message string
}

const privateNoticeView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Private Site - {{.Config.SiteName}}</title>
  </head>
  <body>
    <main>
      <h2>Private Site</h2>
      <p>{{if .Message}}{{.Message}}{{else}}This site is only visible to logged-in users.{{end}}</p>
      <p><a href="/login">Log in</a></p>
    </main>
  </body>
</html>`
