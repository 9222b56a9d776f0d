package templates

import (
	"html/template"

	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/model"
)

type IndexTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	Announcement template.HTML
	ReviewList []*model.VeldReview
	PageInfo *PageInfoModel
}

const indexView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>{{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      {{if .Announcement}}<section class="announcement">{{.Announcement}}</section>{{end}}
      <h2>Reviews</h2>
      {{if .ReviewList}}
      <ul class="review-list">
        {{range .ReviewList}}
        <li>
          <a href="/review/{{.ReviewAbsId}}{{urlappendViewSettings $.Scope}}">{{firstLine .Subject}}</a>
          {{if eq .Status 2}}<span class="status">[closed]</span>{{end}}
          <span class="meta">by {{showUser $.Scope .Owner}}, {{toFuzzyTime .ModifiedTime}}</span>
          {{if .ReviewerList}}<span class="meta">reviewers: {{showUsers $.Scope .ReviewerList}}</span>{{end}}
        </li>
        {{end}}
      </ul>
      {{else}}
      <p>No review yet.</p>
      {{end}}
      {{if .PageInfo}}{{if gt .PageInfo.TotalPage 1}}
      <nav class="pagination">
        {{if gt .PageInfo.PageNum 1}}<a href="/?p={{add .PageInfo.PageNum -1}}&s={{.PageInfo.PageSize}}">prev</a>{{end}}
        <span>page {{.PageInfo.PageNum}} / {{.PageInfo.TotalPage}}</span>
        {{if lt .PageInfo.PageNum .PageInfo.TotalPage}}<a href="/?p={{add .PageInfo.PageNum 1}}&s={{.PageInfo.PageSize}}">next</a>{{end}}
      </nav>
      {{end}}{{end}}
    </main>
  </body>
</html>`
