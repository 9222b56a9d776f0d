package templates

import "strings"

// template function.
func firstLine(s string) string {
	a := strings.SplitN(s, "\n", 2)
	if len(a) >= 1 { return a[0] }
	return ""
}
