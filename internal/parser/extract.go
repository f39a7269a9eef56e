package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// datePatterns mirror the normalizer's layouts on the regex side. The bare
// "Month DD" pattern overlaps the "Month DD, YYYY" one on purpose: the
// source heuristic emits both raw forms and lets normalization resolve them
// independently.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`(?i)\b\w+ \d{1,2}, \d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2} \w+ \d{4}\b`),
	regexp.MustCompile(`(?i)\b\w+ \d{1,2}\b`),
}

var coursePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b[A-Z]{2,4}[- ]?\d{3,4}[A-Z]?\b`),
	regexp.MustCompile(`(?i)\b[A-Z]{2,4} \d{3,4}\b`),
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	courseNameRe = regexp.MustCompile(`(?i)(?:course|class):\s*(.+?)(?:\n|$)`)
	classTimeRe  = regexp.MustCompile(`(?i)([MTWRFSU]+)\s+(\d{1,2}:\d{2}\s*[AaPp][Mm])\s*(?:-\s*(\d{1,2}:\d{2}\s*[AaPp][Mm]))?`)
	sentenceRe   = regexp.MustCompile(`[.!?]`)
	// Substring match without word boundaries, exactly like the source
	// heuristic: "overdue" counts as a deadline sentence too.
	deadlineKeywordRe = regexp.MustCompile(`(?i)due|deadline|assignment|exam|test|quiz|project|paper|presentation|final|midterm`)
)

// NormalizeText collapses all whitespace runs (line breaks included) into
// single spaces so the scans see one flat blob.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Parse runs all four scans over a raw text blob and returns the structured
// result. Empty text yields an empty (never nil-sliced) result rather than
// an error. now anchors year defaulting for year-less dates.
func Parse(text string, now time.Time) models.ParseResult {
	text = NormalizeText(text)
	return models.ParseResult{
		Dates:      ExtractDates(text, now),
		Courses:    ExtractCourses(text),
		Deadlines:  ExtractDeadlines(text, now),
		ClassTimes: ExtractClassTimes(text),
	}
}

// ExtractDates scans with every date pattern, deduplicates the raw matches
// (keeping first-appearance order for determinism), then normalizes each and
// drops the misses. Two raw spellings of the same calendar day both survive;
// deduplication is on the raw string, not the canonical date.
func ExtractDates(text string, now time.Time) []string {
	seen := make(map[string]struct{})
	var raws []string
	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			raws = append(raws, match)
		}
	}

	dates := make([]string, 0, len(raws))
	for _, raw := range raws {
		if canonical, ok := Normalize(raw, now); ok {
			dates = append(dates, canonical)
		}
	}
	return dates
}

// ExtractCourses collects course codes (uppercased, deduplicated,
// first-appearance order) and free-text names following "course:" or
// "class:" labels.
func ExtractCourses(text string) models.CourseInfo {
	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, pattern := range coursePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			code := strings.ToUpper(match)
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}

	names := make([]string, 0)
	for _, groups := range courseNameRe.FindAllStringSubmatch(text, -1) {
		names = append(names, groups[1])
	}

	return models.CourseInfo{Codes: codes, Names: names}
}

// ExtractClassTimes matches "<day letters> <start> [- <end>]" tokens, e.g.
// "MWF 10:00 AM - 11:00 AM". Day letters are any run of MTWRFSU; no check
// that the run forms a real day combination.
func ExtractClassTimes(text string) []models.ClassTimeSlot {
	matches := classTimeRe.FindAllStringSubmatch(text, -1)
	slots := make([]models.ClassTimeSlot, 0, len(matches))
	for _, groups := range matches {
		slot := models.ClassTimeSlot{Days: groups[1], StartTime: groups[2]}
		if groups[3] != "" {
			end := groups[3]
			slot.EndTime = &end
		}
		slots = append(slots, slot)
	}
	return slots
}

// ExtractDeadlines splits the text into sentences, keeps those containing a
// deadline keyword, and emits one Deadline per (sentence, matched date)
// pair: a sentence naming two dates produces two deadlines sharing the same
// title and description.
func ExtractDeadlines(text string, now time.Time) []models.Deadline {
	deadlines := make([]models.Deadline, 0)
	for _, sentence := range sentenceRe.Split(text, -1) {
		if !deadlineKeywordRe.MatchString(sentence) {
			continue
		}
		dates := ExtractDates(sentence, now)
		if len(dates) == 0 {
			continue
		}
		deadlineType := ClassifyType(sentence)
		title := ExtractTitle(sentence)
		for _, date := range dates {
			deadlines = append(deadlines, models.Deadline{
				Date:        date,
				Type:        deadlineType,
				Title:       title,
				Description: strings.TrimSpace(sentence),
				Source:      "parsed",
			})
		}
	}
	return deadlines
}
