package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "subject", firstLine("subject\nbody\nmore"))
	assert.Equal(t, "no newline", firstLine("no newline"))
	assert.Equal(t, "", firstLine(""))
	assert.Equal(t, "", firstLine("\nbody"))
}

func TestAdd(t *testing.T) {
	assert.Equal(t, 3, add(1, 2))
	assert.Equal(t, 0, add(1, -1))
}

func TestToFuzzyTime(t *testing.T) {
	assert.Equal(t, "just now", toFuzzyTime(time.Now()))
	assert.Equal(t, "just now", toFuzzyTime(time.Now().Unix()))
	assert.Equal(t, "an hour ago", toFuzzyTime(time.Now().Add(-75*time.Minute).Unix()))
	assert.Equal(t, "", toFuzzyTime("yesterday"))
	assert.Equal(t, "", toFuzzyTime(nil))
}

func TestToPreciseTime(t *testing.T) {
	ts := int64(1700000000)
	assert.Equal(t, time.Unix(ts, 0).String(), toPreciseTime(ts))
	assert.Equal(t, "", toPreciseTime(nil))
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(renderMarkdown("para with *emphasis*"))
	assert.Contains(t, out, "<em>emphasis</em>")

	out = string(renderMarkdown(`hi <script>alert(1)</script>`))
	assert.NotContains(t, out, "<script>")
}
