package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

func TestClassifyTypePriorityOrder(t *testing.T) {
	cases := []struct {
		sentence string
		want     models.DeadlineType
	}{
		{"Midterm exam and final project due", models.DeadlineTypeExam},
		{"Final PROJECT presentation", models.DeadlineTypeExam}, // "final" outranks "project"
		{"Homework 3 is due Friday", models.DeadlineTypeAssignment},
		{"Pop quiz next week", models.DeadlineTypeQuiz},
		{"Group presentation in class", models.DeadlineTypePresentation},
		{"Submit your work by Monday", models.DeadlineTypeAssignment}, // default
		{"Research paper outline", models.DeadlineTypeProject},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyType(tc.sentence), "sentence %q", tc.sentence)
	}
}

func TestExtractTitleStripsLabelPrefix(t *testing.T) {
	got := ExtractTitle("Assignment: Essay on climate change due Friday")
	assert.Equal(t, "Essay on climate change due Friday", got)
}

func TestExtractTitleStripsStackedPrefixes(t *testing.T) {
	got := ExtractTitle("Due: Assignment: Lab report 2")
	assert.Equal(t, "Lab report 2", got)
}

func TestExtractTitlePrefixCaseInsensitive(t *testing.T) {
	got := ExtractTitle("PROJECT proposal presentation")
	assert.Equal(t, "proposal presentation", got)
}

func TestExtractTitleCollapsesWhitespace(t *testing.T) {
	got := ExtractTitle("  Exam:   chapters   1-4  ")
	assert.Equal(t, "chapters 1-4", got)
}

func TestExtractTitleTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := ExtractTitle(long)
	assert.Len(t, got, 100)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 97), got[:97])
}

func TestExtractTitleEmptyFallsBack(t *testing.T) {
	assert.Equal(t, "Untitled Deadline", ExtractTitle("  Due:  "))
	assert.Equal(t, "Untitled Deadline", ExtractTitle(""))
}
