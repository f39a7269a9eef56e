package parser

import (
	"strconv"
	"strings"
	"time"
)

// canonicalDateLayout is the wire format used everywhere downstream.
const canonicalDateLayout = "2006-01-02"

// dateLayout pairs a Go time layout with whether it carries a year. Layouts
// are tried strictly in order and the first one that consumes the raw string
// in full wins, even when a later layout would also match.
type dateLayout struct {
	layout  string
	hasYear bool
}

var dateLayouts = []dateLayout{
	{"1/2/2006", true},       // MM/DD/YYYY
	{"1-2-2006", true},       // MM-DD-YYYY
	{"2006-1-2", true},       // YYYY-MM-DD
	{"January 2, 2006", true}, // Month DD, YYYY
	{"2 January 2006", true},  // DD Month YYYY
	{"Jan 2, 2006", true},     // Mon DD, YYYY
	{"2 Jan 2006", true},      // DD Mon YYYY
	{"1/2", false},            // MM/DD, current year assumed
	{"January 2", false},      // Month DD, current year assumed
	{"Jan 2", false},          // Mon DD, current year assumed
}

// Normalize parses a raw date substring into canonical YYYY-MM-DD form. The
// year of now is appended to year-less inputs before parsing, so "Dec 31"
// normalized in January lands in the current year, not the previous one —
// that ambiguity is inherited from the source heuristic and deliberately
// left uncorrected. Impossible dates (e.g. day 31 in a 30-day month) and
// unmatched inputs report ok=false; callers discard those candidates.
func Normalize(raw string, now time.Time) (string, bool) {
	candidate := titleCaseWords(strings.TrimSpace(raw))
	for _, dl := range dateLayouts {
		layout, value := dl.layout, candidate
		if !dl.hasYear {
			layout += ", 2006"
			value += ", " + strconv.Itoa(now.Year())
		}
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return parsed.Format(canonicalDateLayout), true
	}
	return "", false
}

// titleCaseWords normalises the casing of alphabetic tokens so month names
// match Go's layout tables regardless of how the document spells them
// ("march", "MARCH"). Non-month words still fail to parse afterwards.
func titleCaseWords(s string) string {
	fields := strings.Split(s, " ")
	for i, f := range fields {
		if f == "" || !isAlpha(f) {
			continue
		}
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	return strings.Join(fields, " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
