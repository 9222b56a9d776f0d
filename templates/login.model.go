package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type LoginTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	ErrorMsg string
}

const loginView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Login - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>Login</h2>
      {{if .ErrorMsg}}<p class="error">{{.ErrorMsg}}</p>{{end}}
      <form method="POST" action="/login">
        <div>
          <label for="email">Email</label><br />
          <input type="email" id="email" name="email" required />
        </div>
        <div>
          <label for="password">Password</label><br />
          <input type="password" id="password" name="password" required />
        </div>
        <input type="submit" value="Login" />
      </form>
      {{if .Config.AllowRegistration}}
      <p>No account yet? <a href="/register">Register</a>.</p>
      {{end}}
    </main>
  </body>
</html>`
