package auxfuncs

import (
	"cmp"
	"math/rand"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

func SortedKeys[K cmp.Ordered, V any](m map[K]V) ([]K) {
	keys := make([]K, 0)
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

const symchdict = "abcdefghijklmnopqrstuvwxyz0123456789-_"
func GenSym(n int) string {
	res := make([]byte, 0)
	for range n {
		res = append(res, symchdict[rand.Intn(len(symchdict))])
	}
	return string(res)
}

var reCSVParseEscapeSequence = regexp.MustCompile(`\\(.)`)
func ParseCSV(s string) []string {
	start := 0
	slen := len(s)
	end := slen - 1
	for start < slen && unicode.IsSpace(rune(s[start])) {
		start += 1
	}
	for end >= 0 && unicode.IsSpace(rune(s[end])) {
		end -= 1
	}
	// a backslash at the end escaped the first trimmed whitespace
	// character; pull that character back in.
	if end >= 0 && s[end] == '\\' && end+1 < slen {
		end += 1
	}
	if end < start { return make([]string, 0) }
	r := s[start : end+1]
	res := make([]string, 0)
	i := 0
	start = 0
	for {
		// an escape right before the end may push i past len(r).
		if i >= len(r) {
			res = append(res, reCSVParseEscapeSequence.ReplaceAllString(r[start:], `$1`))
			break
		}
		switch r[i] {
		case '\\':
			i += 2
		case ',':
			res = append(res, reCSVParseEscapeSequence.ReplaceAllString(r[start:i], `$1`))
			i += 1
			start = i
		default:
			i += 1
		}
	}
	return res
}

func EncodeCSV(a []string) string {
	// NOTE: this does not try to change the array passed in as argument.
	if len(a) <= 0 { return "" }
	res := make([]string, len(a))
	for k, v := range a {
		res[k] = strings.ReplaceAll(v, ",", "\\,")
	}
	pre := strings.Join(res, ",")
	if len(pre) <= 0 { return "" }
	if unicode.IsSpace(rune(pre[0])) { pre = "\\" + pre }
	if unicode.IsSpace(rune(pre[len(pre)-1])) {
		pre = pre[:len(pre)-1] + "\\" + pre[len(pre)-1:]
	}
	return pre
}
