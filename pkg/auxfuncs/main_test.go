package auxfuncs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Equal(t, []string{}, SortedKeys(map[string]int{}))
}

func TestGenSym(t *testing.T) {
	assert.Equal(t, "", GenSym(0))
	s := GenSym(16)
	assert.Len(t, s, 16)
	for _, ch := range s {
		assert.True(t, strings.ContainsRune(symchdict, ch), "unexpected character %q", ch)
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		in string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"single", "a@b.c", []string{"a@b.c"}},
		{"plain list", "a,b,c", []string{"a", "b", "c"}},
		{"outer whitespace trimmed", "  a,b  ", []string{"a", "b"}},
		{"inner whitespace kept", "a, b", []string{"a", " b"}},
		{"escaped comma", `a\,b,c`, []string{"a,b", "c"}},
		{"empty fields kept", "a,,b", []string{"a", "", "b"}},
		{"escaped trailing space", "a\\ ", []string{"a "}},
		{"lone trailing backslash", `a\`, []string{`a\`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSV(tt.in))
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	assert.Equal(t, "", EncodeCSV(nil))
	assert.Equal(t, "", EncodeCSV([]string{}))
	assert.Equal(t, "a,b", EncodeCSV([]string{"a", "b"}))
	assert.Equal(t, `a\,b,c`, EncodeCSV([]string{"a,b", "c"}))
}

func TestCSVRoundTrip(t *testing.T) {
	tests := [][]string{
		{"a@b.c"},
		{"a@b.c", "d@e.f"},
		{"with,comma", "plain"},
		{" leading space", "inner"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt, ParseCSV(EncodeCSV(tt)))
	}
}
