package smp

import (
	"regexp"
	"strings"
	"time"

	"github.com/seongmin-dev/kpx-smp-bot/internal/common"
)

var (
	fullDatePattern  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	shortDatePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})$`)
)

// ParseDateFilter resolves a filter string to a calendar date. Accepted
// forms are YYYY-MM-DD and MM.DD; the short form is expanded to now's year.
func ParseDateFilter(filter string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(filter)

	if fullDatePattern.MatchString(s) {
		d, err := time.ParseInLocation("2006-01-02", s, now.Location())
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}

	if m := shortDatePattern.FindStringSubmatch(s); m != nil {
		d, err := time.ParseInLocation("2006-01-02",
			now.Format("2006")+"-"+m[1]+"-"+m[2], now.Location())
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}

	return time.Time{}, false
}

// IsTodayFilter reports whether the filter asks for today's column.
func IsTodayFilter(filter string) bool {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "오늘", "today":
		return true
	}
	return false
}

// IsWeekFilter reports whether the filter asks for the whole fetched window.
func IsWeekFilter(filter string) bool {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "이번주", "week", "주간":
		return true
	}
	return false
}

// SelectDateColumns picks which date columns to render, as a subsequence of
// cols in original order. The server already returns a full week once any
// date is supplied, so this is purely a display decision over data that has
// already been fetched.
//
//   - no filter: the last 3 columns (or all, when fewer exist)
//   - today: columns containing today's MM.DD, else the single most recent
//   - week: every column
//   - parseable date: columns containing its MM.DD, else the last 3
//   - anything else: the last 3
func SelectDateColumns(cols []string, filter string, today time.Time) []string {
	if strings.TrimSpace(filter) == "" {
		return lastN(cols, 3)
	}

	if IsWeekFilter(filter) {
		return cols
	}

	if IsTodayFilter(filter) {
		if matched := matchColumns(cols, today.Format("01.02")); len(matched) > 0 {
			return matched
		}
		return lastN(cols, 1)
	}

	if d, ok := ParseDateFilter(filter, today); ok {
		if matched := matchColumns(cols, d.Format("01.02")); len(matched) > 0 {
			return matched
		}
		return lastN(cols, 3)
	}

	return lastN(cols, 3)
}

// matchColumns returns the columns whose display string contains sub.
func matchColumns(cols []string, sub string) []string {
	var matched []string
	for _, col := range cols {
		if common.HasAny(col, sub) {
			matched = append(matched, col)
		}
	}
	return matched
}

func lastN(cols []string, n int) []string {
	if len(cols) <= n {
		return cols
	}
	return cols[len(cols)-n:]
}
