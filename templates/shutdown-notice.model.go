package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type ShutdownNoticeTemplateModel struct{
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Message string
}

const shutdownNoticeView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Shut Down - {{.Config.SiteName}}</title>
  </head>
  <body>
    <main>
      <h2>Shut Down</h2>
      <p>{{if .Message}}{{.Message}}{{else}}This site has been shut down by its operator.{{end}}</p>
    </main>
  </body>
</html>`
