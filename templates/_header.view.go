package templates

// shared page header. rendered with the full page model, so it can
// rely on .Config and .LoginInfo being there.
const headerView = `<header>
  <div class="site-name"><a href="/">{{.Config.SiteName}}</a></div>
  <nav>
    {{if .LoginInfo}}{{if .LoginInfo.LoggedIn}}
    <a href="/review/new">New Review</a>
    <a href="/u/{{.LoginInfo.UserName}}">{{.LoginInfo.UserName}}</a>
    <a href="/setting">Setting</a>
    <a href="/logout">Logout</a>
    {{else}}
    <a href="/login">Login</a>
    {{if .Config.AllowRegistration}}<a href="/register">Register</a>{{end}}
    {{end}}{{end}}
  </nav>
</header>`
