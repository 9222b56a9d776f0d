package templates

import (
	"time"

	"github.com/veldwork/veld/pkg/fuzzytime"
)

// template function. takes either a time.Time or a unix timestamp in
// seconds.
func toFuzzyTime(s any) string {
	var timestamp int64
	switch v := s.(type) {
	case time.Time:
		timestamp = v.Unix()
	case int64:
		timestamp = v
	case int:
		timestamp = int64(v)
	default:
		return ""
	}
	return fuzzytime.TimeSpanToFuzzyTimeString(time.Since(time.Unix(timestamp, 0)))
}
