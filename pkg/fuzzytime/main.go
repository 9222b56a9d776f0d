package fuzzytime

import (
	"fmt"
	"time"
)

// renders a duration as the kind of imprecise timestamp people
// actually read on listing pages ("3 days ago", "a month ago").

func TimeSpanToFuzzyTimeString(s time.Duration) string {
	minute := int64(s.Minutes())
	hour := int64(s.Hours())
	if minute < 1 { return "just now" }
	if hour < 1 { return fmt.Sprintf("%d minutes ago", minute) }
	if minute < 100 { return "an hour ago" }
	if hour < 10 { return fmt.Sprintf("%d hours ago", hour) }
	if hour < 14 { return "half a day ago" }
	if hour < 20 { return fmt.Sprintf("%d hours ago", hour) }
	if hour < 26 { return "a day ago" }
	dayCount := hour / 24
	dayRemain := hour % 24
	weekCount := dayCount / 7
	weekRemain := dayCount % 7
	monthCount := dayCount / 30
	monthRemain := dayCount % 30
	yearCount := monthCount / 12
	yearRemain := monthCount % 12
	if yearCount >= 1 {
		y := "years"
		if yearCount == 1 { y = "year" }
		if yearRemain == 1 {
			return fmt.Sprintf("%d %s 1 month ago", yearCount, y)
		}
		return fmt.Sprintf("%d %s %d months ago", yearCount, y, yearRemain)
	}
	if monthCount >= 1 {
		month := monthCount
		if monthRemain >= 25 { month += 1 }
		return fmt.Sprintf("%d months ago", month)
	}
	if monthRemain >= 25 { return "a month ago" }
	if weekCount >= 1 {
		week := weekCount
		if weekRemain >= 6 { week += 1 }
		return fmt.Sprintf("%d weeks ago", week)
	}
	if weekRemain >= 6 { return "a week ago" }
	day := dayCount
	if dayRemain >= 20 { day += 1 }
	return fmt.Sprintf("%d days ago", day)
}
