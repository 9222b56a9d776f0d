package templates

import (
	ht "html/template"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
)

// template function. user-supplied markdown always goes through the
// sanitizer on its way out.
func renderMarkdown(s string) ht.HTML {
	rs := string(markdown.ToHTML([]byte(s), nil, nil))
	rs = bluemonday.UGCPolicy().Sanitize(rs)
	return ht.HTML(rs)
}
