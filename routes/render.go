package routes

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	chtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"
	"github.com/niklasfasching/go-org/org"
	"github.com/veldwork/veld/pkg/veld"
)

// RenderAnnouncement renders the configured front page message into
// sanitized html according to its declared type. anything that fails
// to render falls back to an escaped <pre> block rather than an
// empty front page.
func RenderAnnouncement(cfg *veld.VeldConfig) template.HTML {
	f := cfg.FrontPageMessage
	if len(f) <= 0 { return template.HTML("") }
	var res string
	switch cfg.FrontPageMessageType {
	case "markdown":
		res = string(markdown.ToHTML([]byte(f), nil, nil))
	case "org":
		out, err := org.New().Parse(strings.NewReader(f), "").Write(org.NewHTMLWriter())
		if err != nil {
			res = fmt.Sprintf("<pre>%s</pre>", html.EscapeString(f))
		} else {
			res = out
		}
	case "html":
		res = f
	default:
		res = fmt.Sprintf("<pre>%s</pre>", html.EscapeString(f))
	}
	res = bluemonday.UGCPolicy().Sanitize(res)
	return template.HTML(res)
}

// RenderPatch runs patch text through the diff highlighter. the
// result carries inline styles so the page needs no stylesheet of
// its own.
func RenderPatch(patch string) (template.HTML, error) {
	lexer := lexers.Get("diff")
	if lexer == nil { lexer = lexers.Fallback }
	it, err := lexer.Tokenise(nil, patch)
	if err != nil { return template.HTML(""), err }
	style := styles.Get("xcode")
	if style == nil { style = styles.Fallback }
	formatter := chtml.New(chtml.WithClasses(false), chtml.WithLineNumbers(true))
	buf := new(bytes.Buffer)
	err = formatter.Format(buf, style, it)
	if err != nil { return template.HTML(""), err }
	return template.HTML(buf.String()), nil
}
