package templates

import (
	"html/template"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/model"
)

type ReviewTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	Review *model.VeldReview
	RenderedPatch template.HTML
	MessageList []*model.VeldReviewMessage
}

const reviewView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>{{firstLine .Review.Subject}} - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>{{firstLine .Review.Subject}}</h2>
      <p class="meta">
        by {{showUser .Scope .Review.Owner}},
        created {{toFuzzyTime .Review.CreatedTime}},
        last action {{toFuzzyTime .Review.ModifiedTime}}
        {{if eq .Review.Status 1}}<span class="status">[open]</span>{{else}}<span class="status">[closed]</span>{{end}}
      </p>
      {{if .Review.ReviewerList}}<p class="meta">reviewers: {{showUsers .Scope .Review.ReviewerList}}</p>{{end}}
      {{if .Review.CCList}}<p class="meta">cc: {{nicknames .Scope .Review.CCList}}</p>{{end}}
      {{if .Review.Description}}
      <section class="description">{{renderMarkdown .Review.Description}}</section>
      {{end}}
      {{if .RenderedPatch}}
      <section class="patch"{{if .Scope.ViewSettings}}{{if .Scope.ViewSettings.ColumnWidth}} style="max-width: {{.Scope.ViewSettings.ColumnWidth}}ch"{{end}}{{end}}>
        {{.RenderedPatch}}
      </section>
      {{end}}
      <section class="messages">
        <h3>Messages</h3>
        {{range .MessageList}}
        <div class="message">
          <div class="meta">{{nickname $.Scope .MessageAuthor}}, {{toPreciseTime .MessageTimestamp}}</div>
          {{if eq .MessageType 2}}<div class="sys">closed this review</div>
          {{else if eq .MessageType 3}}<div class="sys">reopened this review</div>
          {{else}}<div class="body">{{renderMarkdown .MessageContent}}</div>{{end}}
        </div>
        {{else}}
        <p>No message yet.</p>
        {{end}}
      </section>
      {{if .LoginInfo}}{{if .LoginInfo.LoggedIn}}
      <section class="actions">
        <form method="POST" action="/review/{{.Review.ReviewAbsId}}/message">
          <textarea name="content" rows="6" cols="80"></textarea>
          <br />
          <input type="submit" value="Post Message" />
        </form>
        {{if eq .Review.Status 1}}
        <form method="POST" action="/review/{{.Review.ReviewAbsId}}/close">
          <input type="submit" value="Close Review" />
        </form>
        {{else}}
        <form method="POST" action="/review/{{.Review.ReviewAbsId}}/reopen">
          <input type="submit" value="Reopen Review" />
        </form>
        {{end}}
      </section>
      {{end}}{{end}}
    </main>
  </body>
</html>`
