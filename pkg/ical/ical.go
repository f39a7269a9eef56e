// Package ical renders a synthesized schedule as an RFC 5545 calendar so
// students can import it into Google Calendar or Outlook. Only the
// actionable entries (study blocks, reviews, deadlines) become events;
// meals and routine slots stay out of the calendar.
package ical

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

const (
	prodID    = "-//StudyFlow//Schedule//EN"
	uidDomain = "studyflow.app"

	dateLayout  = "2006-01-02"
	stampLayout = "20060102T150405"
)

var eventTypes = map[models.ActivityType]struct{}{
	models.ActivityTypeStudy:    {},
	models.ActivityTypeReview:   {},
	models.ActivityTypeDeadline: {},
}

// Render serializes the schedule into ICS bytes. Days are emitted in date
// order so output is deterministic for a given schedule.
func Render(schedule models.Schedule) []byte {
	var sb strings.Builder
	writeLine(&sb, "BEGIN:VCALENDAR")
	writeLine(&sb, "VERSION:2.0")
	writeLine(&sb, "PRODID:"+prodID)
	writeLine(&sb, "CALSCALE:GREGORIAN")

	dates := make([]string, 0, len(schedule))
	for date := range schedule {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		for _, activity := range schedule[date] {
			if _, ok := eventTypes[activity.Type]; !ok {
				continue
			}
			writeEvent(&sb, date, activity)
		}
	}

	writeLine(&sb, "END:VCALENDAR")
	return []byte(sb.String())
}

func writeEvent(sb *strings.Builder, date string, activity models.Activity) {
	start, err := time.Parse(dateLayout+" 15:04", date+" "+activity.Time)
	if err != nil {
		return
	}
	duration := activity.Duration
	if duration <= 0 {
		duration = 60
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	writeLine(sb, "BEGIN:VEVENT")
	writeLine(sb, "UID:"+uuid.NewString()+"@"+uidDomain)
	writeLine(sb, "DTSTAMP:"+time.Now().UTC().Format(stampLayout)+"Z")
	writeLine(sb, "DTSTART:"+start.Format(stampLayout))
	writeLine(sb, "DTEND:"+end.Format(stampLayout))
	writeLine(sb, "SUMMARY:"+escape(activity.Activity))
	if activity.Description != "" {
		writeLine(sb, "DESCRIPTION:"+escape(activity.Description))
	}
	if activity.Course != "" {
		writeLine(sb, "LOCATION:"+escape(activity.Course))
	}
	writeLine(sb, "CATEGORIES:EDUCATION")
	writeLine(sb, "END:VEVENT")
}

// writeLine appends one content line with the CRLF terminator the format
// requires, folding lines over 75 octets.
func writeLine(sb *strings.Builder, line string) {
	const limit = 75
	for len(line) > limit {
		cut := limit
		// Never split a UTF-8 sequence.
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString("\r\n ")
		line = line[cut:]
	}
	sb.WriteString(line)
	sb.WriteString("\r\n")
}

func escape(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}

// Filename builds the attachment name for a student's calendar export.
func Filename(email string) string {
	user := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		user = email[:at]
	}
	return fmt.Sprintf("studyflow_%s.ics", user)
}
