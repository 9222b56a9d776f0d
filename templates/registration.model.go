package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type RegistrationTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	ErrorMsg string
}

const registrationView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Register - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>Register</h2>
      {{if .ErrorMsg}}<p class="error">{{.ErrorMsg}}</p>{{end}}
      <form method="POST" action="/register">
        <div>
          <label for="email">Email</label><br />
          <input type="email" id="email" name="email" required />
        </div>
        <div>
          <label for="nickname">Nickname (optional; the part of your email before the @ is used when left empty)</label><br />
          <input type="text" id="nickname" name="nickname" />
        </div>
        <div>
          <label for="password">Password</label><br />
          <input type="password" id="password" name="password" required />
        </div>
        <div>
          <label for="confirm-password">Confirm Password</label><br />
          <input type="password" id="confirm-password" name="confirm-password" required />
        </div>
        <input type="submit" value="Register" />
      </form>
    </main>
  </body>
</html>`
