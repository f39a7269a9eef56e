package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// typeKeywords are checked in priority order; the first group with a hit
// decides the type. A sentence containing both "exam" and "project" is an
// exam.
var typeKeywords = []struct {
	words []string
	kind  models.DeadlineType
}{
	{[]string{"exam", "test", "final", "midterm"}, models.DeadlineTypeExam},
	{[]string{"assignment", "homework", "hw"}, models.DeadlineTypeAssignment},
	{[]string{"project", "paper"}, models.DeadlineTypeProject},
	{[]string{"quiz"}, models.DeadlineTypeQuiz},
	{[]string{"presentation", "present"}, models.DeadlineTypePresentation},
}

// titlePrefixes strip leading "label:" markers. Every pattern is applied in
// sequence against whatever remains, so stacked labels ("Due: Assignment: X")
// all fall away.
var titlePrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^due:?\s*`),
	regexp.MustCompile(`(?i)^deadline:?\s*`),
	regexp.MustCompile(`(?i)^assignment:?\s*`),
	regexp.MustCompile(`(?i)^exam:?\s*`),
	regexp.MustCompile(`(?i)^test:?\s*`),
	regexp.MustCompile(`(?i)^quiz:?\s*`),
	regexp.MustCompile(`(?i)^project:?\s*`),
}

const (
	maxTitleLen     = 100
	truncatedPrefix = 97
	untitledTitle   = "Untitled Deadline"
)

// ClassifyType assigns a deadline category from keyword hits. Substring
// matching, case-insensitive; assignment is the fallback.
func ClassifyType(sentence string) models.DeadlineType {
	lower := strings.ToLower(sentence)
	for _, group := range typeKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.kind
			}
		}
	}
	return models.DeadlineTypeAssignment
}

// ExtractTitle derives a human title from a deadline sentence: leading label
// prefixes are stripped, whitespace collapsed, and overlong titles truncated
// to 97 characters plus an ellipsis. An empty result falls back to
// "Untitled Deadline".
func ExtractTitle(sentence string) string {
	title := strings.TrimSpace(sentence)
	for _, prefix := range titlePrefixes {
		title = prefix.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
	if utf8.RuneCountInString(title) > maxTitleLen {
		title = string([]rune(title)[:truncatedPrefix]) + "..."
	}
	if title == "" {
		return untitledTitle
	}
	return title
}
