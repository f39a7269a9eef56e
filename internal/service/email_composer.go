package service

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/scheduler"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/ical"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/mailer"
)

const emailDays = 7

var htmlTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px; margin: 0 auto;">
  <h1 style="color: #4a56e2;">📅 Your StudyFlow Schedule</h1>
  <p>Here is your plan for the week ahead. The full semester calendar is attached as an .ics file you can import into your calendar app.</p>
  {{range .Days}}
  <h2 style="border-bottom: 1px solid #ddd; padding-bottom: 4px;">{{.Label}}</h2>
  <table style="width: 100%; border-collapse: collapse;">
    {{range .Activities}}
    <tr>
      <td style="padding: 4px 8px; width: 60px; vertical-align: top; color: #666;">{{.Time}}</td>
      <td style="padding: 4px 8px;{{if .Highlight}} font-weight: bold; color: #c0392b;{{end}}">
        {{.Activity}}{{if .Duration}} <span style="color: #999;">({{.Duration}} min)</span>{{end}}
      </td>
    </tr>
    {{end}}
  </table>
  {{end}}
  {{if .Deadlines}}
  <h2 style="color: #c0392b;">⏰ Upcoming Deadlines</h2>
  <ul>
    {{range .Deadlines}}
    <li><strong>{{.Date}}</strong> — {{.Title}}{{if .Course}} ({{.Course}}){{end}}</li>
    {{end}}
  </ul>
  {{end}}
  <p style="color: #999; font-size: 12px;">Sent by StudyFlow. Upload a new syllabus any time to refresh your plan.</p>
</body>
</html>`))

type emailDay struct {
	Label      string
	Activities []emailActivity
}

type emailActivity struct {
	Time      string
	Activity  string
	Duration  int
	Highlight bool
}

type emailData struct {
	Days      []emailDay
	Deadlines []models.UpcomingDeadline
}

// ComposeScheduleEmail builds the weekly schedule message: an HTML body, a
// plain-text alternative, the full calendar as ICS and a plain-text summary
// document the student can keep.
func ComposeScheduleEmail(email string, schedule models.Schedule, deadlines []models.Deadline, prefs scheduler.Preferences, now time.Time) (mailer.Message, error) {
	data := buildEmailData(schedule, deadlines, now)

	var htmlBody strings.Builder
	if err := htmlTemplate.Execute(&htmlBody, data); err != nil {
		return mailer.Message{}, fmt.Errorf("render schedule email: %w", err)
	}

	return mailer.Message{
		To:      email,
		Subject: fmt.Sprintf("📅 Your Study Schedule — Week of %s", now.Format("Jan 2")),
		Text:    textBody(data),
		HTML:    htmlBody.String(),
		Attachments: []mailer.Attachment{
			{
				Filename:    ical.Filename(email),
				ContentType: "text/calendar",
				Content:     ical.Render(schedule),
			},
			{
				Filename:    "StudyFlow_Summary.txt",
				ContentType: "text/plain",
				Content:     []byte(summaryDoc(email, schedule, prefs)),
			},
		},
	}, nil
}

func buildEmailData(schedule models.Schedule, deadlines []models.Deadline, now time.Time) emailData {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	data := emailData{}
	for i := 0; i < emailDays; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		activities := schedule[date]
		if len(activities) == 0 {
			continue
		}
		entry := emailDay{Label: day.Format("Monday, January 2")}
		for _, a := range activities {
			entry.Activities = append(entry.Activities, emailActivity{
				Time:      a.Time,
				Activity:  a.Activity,
				Duration:  a.Duration,
				Highlight: a.Type == models.ActivityTypeDeadline,
			})
		}
		data.Days = append(data.Days, entry)
	}

	horizon := start.AddDate(0, 0, 30).Format("2006-01-02")
	today := start.Format("2006-01-02")
	for _, d := range deadlines {
		if d.Date < today || d.Date > horizon {
			continue
		}
		data.Deadlines = append(data.Deadlines, models.UpcomingDeadline{
			Date:   d.Date,
			Title:  d.Title,
			Course: d.CourseCode,
		})
	}
	sort.SliceStable(data.Deadlines, func(i, j int) bool { return data.Deadlines[i].Date < data.Deadlines[j].Date })
	return data
}

func textBody(data emailData) string {
	var sb strings.Builder
	sb.WriteString("Your StudyFlow Schedule\n\n")
	for _, day := range data.Days {
		sb.WriteString(day.Label + "\n")
		for _, a := range day.Activities {
			if a.Duration > 0 {
				fmt.Fprintf(&sb, "  %s  %s (%d min)\n", a.Time, a.Activity, a.Duration)
			} else {
				fmt.Fprintf(&sb, "  %s  %s\n", a.Time, a.Activity)
			}
		}
		sb.WriteString("\n")
	}
	if len(data.Deadlines) > 0 {
		sb.WriteString("Upcoming deadlines:\n")
		for _, d := range data.Deadlines {
			if d.Course != "" {
				fmt.Fprintf(&sb, "  %s — %s (%s)\n", d.Date, d.Title, d.Course)
			} else {
				fmt.Fprintf(&sb, "  %s — %s\n", d.Date, d.Title)
			}
		}
	}
	return sb.String()
}

const summaryDocDays = 14

// summaryDoc renders the keep-for-your-records text attachment: the
// preferences the plan was built from and the first two weeks of it.
func summaryDoc(email string, schedule models.Schedule, prefs scheduler.Preferences) string {
	prefs = prefs.WithDefaults()
	var sb strings.Builder
	sb.WriteString("STUDYFLOW - YOUR PERSONALIZED STUDY PLAN SUMMARY\n")
	sb.WriteString("===============================================\n\n")
	sb.WriteString("STUDENT PREFERENCES:\n")
	fmt.Fprintf(&sb, "- Email: %s\n", email)
	fmt.Fprintf(&sb, "- Wake Up Time: %02d:00\n", prefs.Wakeup)
	fmt.Fprintf(&sb, "- Sleep Time: %02d:00\n", prefs.Sleep)
	fmt.Fprintf(&sb, "- Study Style: %s\n", prefs.StudyStyle)
	sb.WriteString("\nSCHEDULE OVERVIEW:\n=================\n")

	dates := make([]string, 0, len(schedule))
	for date := range schedule {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > summaryDocDays {
		dates = dates[:summaryDocDays]
	}
	for _, date := range dates {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", day.Format("Monday, January 2, 2006"))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for _, a := range schedule[date] {
			fmt.Fprintf(&sb, "%s - %s\n", a.Time, a.Activity)
			if a.Description != "" {
				fmt.Fprintf(&sb, "    Notes: %s\n", a.Description)
			}
		}
	}

	sb.WriteString(`
STUDY TIPS FOR SUCCESS:
======================
- Take regular 10-15 minute breaks between study sessions
- Stay hydrated and maintain good nutrition
- Get adequate sleep (7-9 hours per night)
- Use active learning techniques (flashcards, practice problems)
- Create a dedicated study space free from distractions
- Don't hesitate to ask professors or classmates for help

Generated by StudyFlow - Your Smart College Planner
`)
	return sb.String()
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #667eea;">📚 StudyFlow Reminder</h1>
  <p>Don't forget about your upcoming deadline!</p>
  <div style="background: {{if .Urgent}}#f8d7da{{else}}#fff3cd{{end}}; padding: 15px; border-radius: 8px;">
    <h2>🎯 {{.Title}}</h2>
    {{if .Course}}<p><strong>Course:</strong> {{.Course}}</p>{{end}}
    <p><strong>Due Date:</strong> {{.Date}}{{if .Time}} at {{.Time}}{{end}}</p>
    <p><strong>Days Remaining:</strong> {{.DaysUntil}}</p>
    {{if .Description}}<p><strong>Description:</strong> {{.Description}}</p>{{end}}
  </div>
  <h3>💡 Study Tips:</h3>
  <ul>
    <li>Break down the work into smaller, manageable tasks</li>
    <li>Use the Pomodoro technique for focused study sessions</li>
    <li>Don't wait until the last minute - start today!</li>
    <li>Ask for help if you need clarification</li>
  </ul>
  <p style="color: #6c757d; font-size: 12px;">This reminder was sent by StudyFlow. Stay organized, stay successful! 🎓</p>
</body>
</html>`))

type reminderData struct {
	Title       string
	Course      string
	Date        string
	Time        string
	Description string
	DaysUntil   int
	Urgent      bool
}

// ComposeReminderEmail builds a single-deadline reminder message.
func ComposeReminderEmail(email string, deadline models.Deadline, daysUntil int) (mailer.Message, error) {
	course := deadline.CourseCode
	if deadline.CourseName != "" {
		course = strings.TrimSpace(course + " - " + deadline.CourseName)
	}
	data := reminderData{
		Title:       deadline.Title,
		Course:      course,
		Date:        deadline.Date,
		Time:        deadline.Time,
		Description: deadline.Description,
		DaysUntil:   daysUntil,
		Urgent:      daysUntil <= 1,
	}

	var htmlBody strings.Builder
	if err := reminderTemplate.Execute(&htmlBody, data); err != nil {
		return mailer.Message{}, fmt.Errorf("render reminder email: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Upcoming deadline: %s\n", deadline.Title)
	if course != "" {
		fmt.Fprintf(&text, "Course: %s\n", course)
	}
	fmt.Fprintf(&text, "Due: %s", deadline.Date)
	if deadline.Time != "" {
		fmt.Fprintf(&text, " at %s", deadline.Time)
	}
	fmt.Fprintf(&text, "\nDays remaining: %d\n", daysUntil)

	return mailer.Message{
		To:      email,
		Subject: fmt.Sprintf("⚠️ Upcoming Deadline: %s", deadline.Title),
		Text:    text.String(),
		HTML:    htmlBody.String(),
	}, nil
}
