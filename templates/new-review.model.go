package templates

import (
	"github.com/veldwork/veld/pkg/veld"
)

type NewReviewTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	ErrorMsg string
}

const newReviewView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>New Review - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>New Review</h2>
      {{if .ErrorMsg}}<p class="error">{{.ErrorMsg}}</p>{{end}}
      <form method="POST" action="/review/new">
        <div>
          <label for="subject">Subject</label><br />
          <input type="text" id="subject" name="subject" size="80" required />
        </div>
        <div>
          <label for="description">Description (markdown)</label><br />
          <textarea id="description" name="description" rows="8" cols="80"></textarea>
        </div>
        <div>
          <label for="reviewers">Reviewers (comma-separated emails)</label><br />
          <input type="text" id="reviewers" name="reviewers" size="80" />
        </div>
        <div>
          <label for="cc">CC (comma-separated emails)</label><br />
          <input type="text" id="cc" name="cc" size="80" />
        </div>
        <div>
          <label for="patch">Patch (unified diff)</label><br />
          <textarea id="patch" name="patch" rows="16" cols="80"></textarea>
        </div>
        <input type="submit" value="Create Review" />
      </form>
    </main>
  </body>
</html>`
