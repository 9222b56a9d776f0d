package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type ErrorTemplateModel struct{
	Config *veld.VeldConfig
	ErrorCode int
	ErrorMessage string
	LoginInfo *LoginInfoModel
}

const errorView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Error - {{.Config.SiteName}}</title>
  </head>
  <body>
    <main>
      <h2>{{.ErrorCode}}</h2>
      <p>{{.ErrorMessage}}</p>
      <p><a href="/">Back to the front page</a></p>
    </main>
  </body>
</html>`
