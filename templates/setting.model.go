package templates

import (
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/model"
)

type SettingTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	User *model.VeldAccount
	ErrorMsg struct{
		Type string
		Message string
	}
}

const settingView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Settings - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>Settings</h2>
      {{if eq .ErrorMsg.Type "error"}}<p class="error">{{.ErrorMsg.Message}}</p>{{end}}
      {{if eq .ErrorMsg.Type "success"}}<p class="success">{{.ErrorMsg.Message}}</p>{{end}}
      <section>
        <h3>Profile</h3>
        <form method="POST" action="/setting">
          <input type="hidden" name="section" value="profile" />
          <div>
            <label for="nickname">Nickname</label><br />
            <input type="text" id="nickname" name="nickname" value="{{.User.Nickname}}" required />
          </div>
          <input type="submit" value="Save" />
        </form>
      </section>
      <section>
        <h3>Review Display</h3>
        <form method="POST" action="/setting">
          <input type="hidden" name="section" value="view" />
          <div>
            <label for="default-context">Default context (leave empty for whole-file)</label><br />
            <input type="number" id="default-context" name="default-context" min="1"{{if .User.DefaultContext}} value="{{.User.DefaultContext}}"{{end}} />
          </div>
          <div>
            <label for="default-column-width">Default column width</label><br />
            <input type="number" id="default-column-width" name="default-column-width" min="1"{{if .User.DefaultColumnWidth}} value="{{.User.DefaultColumnWidth}}"{{end}} />
          </div>
          <input type="submit" value="Save" />
        </form>
      </section>
      <section>
        <h3>Password</h3>
        <form method="POST" action="/setting">
          <input type="hidden" name="section" value="password" />
          <div>
            <label for="current-password">Current password</label><br />
            <input type="password" id="current-password" name="current-password" required />
          </div>
          <div>
            <label for="new-password">New password</label><br />
            <input type="password" id="new-password" name="new-password" required />
          </div>
          <div>
            <label for="confirm-password">Confirm new password</label><br />
            <input type="password" id="confirm-password" name="confirm-password" required />
          </div>
          <input type="submit" value="Change Password" />
        </form>
      </section>
    </main>
  </body>
</html>`
