package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type MaintenanceNoticeTemplateModel struct{
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Message string
}

const maintenanceNoticeView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Under Maintenance - {{.Config.SiteName}}</title>
  </head>
  <body>
    <main>
      <h2>Under Maintenance</h2>
      <p>{{if .Message}}{{.Message}}{{else}}This site is currently under maintenance. Please come back later.{{end}}</p>
    </main>
  </body>
</html>`
