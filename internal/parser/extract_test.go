package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

var extractNow = time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)

func TestExtractDatesDeduplicatesRawMatches(t *testing.T) {
	text := "First exam 03/15/2024 and again on 03/15/2024."
	dates := ExtractDates(text, extractNow)
	assert.Equal(t, []string{"2024-03-15"}, dates)
}

func TestExtractDatesDropsInvalidCandidates(t *testing.T) {
	text := "Read Chapter 12 before 04/31/2024 and submit 05/01/2024."
	dates := ExtractDates(text, extractNow)
	// "Chapter 12" matches the bare Month DD pattern but fails
	// normalization; 04/31 is an impossible date.
	assert.Equal(t, []string{"2024-05-01"}, dates)
}

func TestExtractDatesOverlappingPatterns(t *testing.T) {
	// "March 15, 2024" also surfaces a bare "March 15" raw match, which
	// normalizes into the injected reference year. Inherited behaviour.
	dates := ExtractDates("Essay due March 15, 2024", extractNow)
	require.Len(t, dates, 2)
	assert.Contains(t, dates, "2024-03-15")
}

func TestExtractCourses(t *testing.T) {
	text := "Welcome to CS101 and math 201. Course: Intro to Programming"
	info := ExtractCourses(text)

	assert.Contains(t, info.Codes, "CS101")
	assert.Contains(t, info.Codes, "MATH 201")
	require.Len(t, info.Names, 1)
	assert.Equal(t, "Intro to Programming", info.Names[0])
}

func TestExtractCoursesDeduplicates(t *testing.T) {
	info := ExtractCourses("CS101 cs101 CS101")
	assert.Equal(t, []string{"CS101"}, info.Codes)
}

func TestExtractClassTimes(t *testing.T) {
	text := "Lectures MWF 10:00 AM - 11:00 AM, labs TR 2:30 PM"
	slots := ExtractClassTimes(text)
	require.Len(t, slots, 2)

	assert.Equal(t, "MWF", slots[0].Days)
	assert.Equal(t, "10:00 AM", slots[0].StartTime)
	require.NotNil(t, slots[0].EndTime)
	assert.Equal(t, "11:00 AM", *slots[0].EndTime)

	assert.Equal(t, "TR", slots[1].Days)
	assert.Equal(t, "2:30 PM", slots[1].StartTime)
	assert.Nil(t, slots[1].EndTime)
}

func TestExtractClassTimesIgnoresHourLetterOutsideDayAlphabet(t *testing.T) {
	// "TTH" is a common syllabus shorthand but H is not a day letter;
	// Thursday is written R.
	slots := ExtractClassTimes("Seminar TTH 2:30 PM")
	assert.Empty(t, slots)
}

func TestExtractDeadlinesOnePerSentenceDatePair(t *testing.T) {
	text := "Midterm exam on 10/15/2024 with review on 10/12/2024. Lunch at noon."
	deadlines := ExtractDeadlines(text, extractNow)

	require.Len(t, deadlines, 2)
	for _, d := range deadlines {
		assert.Equal(t, models.DeadlineTypeExam, d.Type)
		assert.Equal(t, deadlines[0].Title, d.Title)
		assert.Equal(t, deadlines[0].Description, d.Description)
		assert.Equal(t, "parsed", d.Source)
	}
	assert.Equal(t, "2024-10-15", deadlines[0].Date)
	assert.Equal(t, "2024-10-12", deadlines[1].Date)
}

func TestExtractDeadlinesSkipsDatelessSentences(t *testing.T) {
	deadlines := ExtractDeadlines("The final exam is very important!", extractNow)
	assert.Empty(t, deadlines)
}

func TestParseEmptyTextYieldsEmptyResult(t *testing.T) {
	result := Parse("", extractNow)
	assert.Empty(t, result.Dates)
	assert.Empty(t, result.Courses.Codes)
	assert.Empty(t, result.Courses.Names)
	assert.Empty(t, result.Deadlines)
	assert.Empty(t, result.ClassTimes)
}

func TestParseCollapsesWhitespaceBeforeScanning(t *testing.T) {
	text := "Assignment due\n03/20/2024   for\r\nCS101"
	result := Parse(text, extractNow)
	assert.Contains(t, result.Dates, "2024-03-20")
	assert.Contains(t, result.Courses.Codes, "CS101")
	require.NotEmpty(t, result.Deadlines)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeText("  a\nb\r\n  c  "))
}
