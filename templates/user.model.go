package templates

import (
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/model"
)

type UserTemplateModel struct {
	Config *veld.VeldConfig
	LoginInfo *LoginInfoModel
	Scope *RequestScope
	User *model.VeldAccount
	ReviewList []*model.VeldReview
	PageInfo *PageInfoModel
}

const userView = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>{{.User.Nickname}} - {{.Config.SiteName}}</title>
  </head>
  <body>
    {{template "_header" .}}
    <main>
      <h2>{{.User.Nickname}}</h2>
      <p class="meta">member since {{toFuzzyTime .User.RegisterTime}}</p>
      <h3>Reviews</h3>
      {{if .ReviewList}}
      <ul class="review-list">
        {{range .ReviewList}}
        <li>
          <a href="/review/{{.ReviewAbsId}}{{urlappendViewSettings $.Scope}}">{{firstLine .Subject}}</a>
          {{if eq .Status 2}}<span class="status">[closed]</span>{{end}}
          <span class="meta">last modified {{toFuzzyTime .ModifiedTime}}</span>
        </li>
        {{end}}
      </ul>
      <div class="pagination">
        {{if gt .PageInfo.PageNum 1}}<a href="?p={{add .PageInfo.PageNum -1}}&s={{.PageInfo.PageSize}}">Prev</a>{{end}}
        <span>{{.PageInfo.PageNum}} / {{.PageInfo.TotalPage}}</span>
        {{if lt .PageInfo.PageNum .PageInfo.TotalPage}}<a href="?p={{add .PageInfo.PageNum 1}}&s={{.PageInfo.PageSize}}">Next</a>{{end}}
      </div>
      {{else}}
      <p>No review yet.</p>
      {{end}}
    </main>
  </body>
</html>`
