// Package dates converts date substrings recognized by the pattern library
// into canonical ISO form.
package dates

import (
	"strings"
	"time"
)

// monthsByName resolves month names to month numbers. Covers full names,
// the standard 3-letter abbreviations, and "Sept".
var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Normalize converts a recognized date substring to "YYYY-MM-DD".
//
// It tolerates month names or numeric months (month-first for ambiguous
// numeric dates), slash separators, and 2-digit years (00-68 means 2000s,
// 69-99 means 1900s, the same rule time.Parse applies to "06" layouts).
//
// Normalize never fails: input it cannot parse is returned trimmed but
// otherwise unchanged, so callers always get either an ISO date or the
// original substring as a degraded value.
func Normalize(s string) string {
	trimmed := strings.TrimSpace(s)
	if t, ok := parse(trimmed); ok {
		return t.Format("2006-01-02")
	}
	return trimmed
}

func parse(s string) (time.Time, bool) {
	// ISO form first: unambiguous, and strict per time.Parse.
	if len(s) == 10 && s[4] == '-' && s[7] == '-' {
		t, err := time.Parse("2006-01-02", s)
		return t, err == nil
	}

	if strings.Contains(s, "/") {
		return parseTokens(strings.Split(s, "/"))
	}

	// "Jan. 1, 2024" and friends: drop punctuation, split on whitespace.
	cleaned := strings.NewReplacer(",", " ", ".", " ").Replace(s)
	return parseTokens(strings.Fields(cleaned))
}

// parseTokens interprets [month day year] with month as a name or number.
func parseTokens(tokens []string) (time.Time, bool) {
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	month, ok := parseMonth(strings.TrimSpace(tokens[0]))
	if !ok {
		return time.Time{}, false
	}
	day, ok := parseInt(strings.TrimSpace(tokens[1]))
	if !ok || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, ok := parseYear(strings.TrimSpace(tokens[2]))
	if !ok {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 2);
	// treat any shift as a parse failure.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func parseMonth(tok string) (time.Month, bool) {
	if m, ok := monthsByName[strings.ToLower(tok)]; ok {
		return m, true
	}
	n, ok := parseInt(tok)
	if !ok || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

func parseYear(tok string) (int, bool) {
	n, ok := parseInt(tok)
	if !ok {
		return 0, false
	}
	switch len(tok) {
	case 4:
		return n, true
	case 2:
		if n <= 68 {
			return 2000 + n, true
		}
		return 1900 + n, true
	default:
		return 0, false
	}
}

// parseInt is a strict base-10 digits-only parse.
func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
