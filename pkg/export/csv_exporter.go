package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

var deadlineHeaders = []string{"course_code", "course_name", "date", "time", "type", "title", "description"}

// DeadlinesCSV renders the deadline list as CSV bytes, one row per deadline
// in the order given.
func DeadlinesCSV(deadlines []models.Deadline) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(deadlineHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, d := range deadlines {
		record := []string{
			d.CourseCode,
			d.CourseName,
			d.Date,
			d.Time,
			string(d.Type),
			d.Title,
			d.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
