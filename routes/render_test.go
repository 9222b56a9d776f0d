package routes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld"
)

func TestRenderAnnouncement(t *testing.T) {
	cfg := &veld.VeldConfig{}
	assert.Equal(t, "", string(RenderAnnouncement(cfg)))

	cfg.FrontPageMessageType = "markdown"
	cfg.FrontPageMessage = "# Welcome\n\npost *small* patches."
	out := string(RenderAnnouncement(cfg))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<em>small</em>")

	// raw html passes through sanitization, scripts do not.
	cfg.FrontPageMessageType = "html"
	cfg.FrontPageMessage = `<b>hi</b><script>alert(1)</script>`
	out = string(RenderAnnouncement(cfg))
	assert.Contains(t, out, "<b>hi</b>")
	assert.NotContains(t, out, "<script>")

	// unknown types fall back to an escaped pre block.
	cfg.FrontPageMessageType = "csv"
	cfg.FrontPageMessage = "<a>"
	out = string(RenderAnnouncement(cfg))
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "&lt;a&gt;")
}

func TestRenderPatch(t *testing.T) {
	patch := strings.Join([]string{
		"--- a/main.go",
		"+++ b/main.go",
		"@@ -1,3 +1,3 @@",
		"-old line",
		"+new line",
	}, "\n")
	out, err := RenderPatch(patch)
	assert.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "new line")
	assert.Contains(t, s, "<span")
	// line numbers are part of the output.
	assert.Contains(t, s, "1")
}
