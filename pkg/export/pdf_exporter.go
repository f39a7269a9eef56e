package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jung-kurt/gofpdf"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// SchedulePDF renders a student's schedule as a printable day-by-day table.
type SchedulePDF struct{}

// NewSchedulePDF constructs the PDF renderer.
func NewSchedulePDF() *SchedulePDF {
	return &SchedulePDF{}
}

// Render produces a PDF with one section per day, days in date order. The
// core fonts carry no emoji glyphs, so activity labels are exported without
// their emoji prefix.
func (e *SchedulePDF) Render(email string, schedule models.Schedule) ([]byte, error) {
	if len(schedule) == 0 {
		return nil, fmt.Errorf("pdf requires a non-empty schedule")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "STUDYFLOW SCHEDULE", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, email, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	dates := make([]string, 0, len(schedule))
	for date := range schedule {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, date, "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(20, 7, "Time", "1", 0, "C", false, 0, "")
		pdf.CellFormat(100, 7, "Activity", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, "Duration", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, "Course", "1", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, activity := range schedule[date] {
			duration := ""
			if activity.Duration > 0 {
				duration = fmt.Sprintf("%d min", activity.Duration)
			}
			pdf.CellFormat(20, 6, activity.Time, "1", 0, "C", false, 0, "")
			pdf.CellFormat(100, 6, asciiLabel(activity.Activity), "1", 0, "", false, 0, "")
			pdf.CellFormat(25, 6, duration, "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 6, activity.Course, "1", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// asciiLabel drops non-Latin-1 runes (emoji markers) and tidies whitespace.
func asciiLabel(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r <= unicode.MaxLatin1 {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
