// Package calendar renders scraped events as an iCalendar document.
//
// Rapla consumers have historically depended on the exact line shape this
// writer produces: content lines hold at most 72 bytes of UTF-8, continuation
// lines start with a single space, timestamps carry a literal "00" seconds
// field. Keep byte-level changes out of here unless the downstream calendars
// have been checked.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"raplacal/internal/event"
)

const (
	// dtFormat is the minute-resolution stamp; the serializer appends a
	// literal "00Z" seconds field.
	dtFormat = "20060102T1504"

	// maxLineBytes is the UTF-8 byte budget of one physical content line,
	// excluding the continuation space and the CRLF.
	maxLineBytes = 72

	privacyNotice = "Dozent:innen sind aufgrund von Datenschutzbedenken der DHBW nicht mehr öffentlich!"
)

// Writer emits iCalendar text for a sequence of events.
type Writer struct {
	// ProdID identifies the generating product in the calendar header.
	ProdID string
	// Domain is the host part of generated UIDs.
	Domain string
	// Contact is the placeholder address attached to ORGANIZER and
	// ATTENDEE entries.
	Contact string
	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

// WriteCalendar writes the complete calendar document: header, one VEVENT
// block per event, footer.
func (cw *Writer) WriteCalendar(w io.Writer, events []*event.Event) error {
	now := time.Now
	if cw.Now != nil {
		now = cw.Now
	}

	if err := writeLine(w, "BEGIN:VCALENDAR"); err != nil {
		return err
	}
	if err := writeLine(w, "VERSION:2.0"); err != nil {
		return err
	}
	if err := writeField(w, "PRODID", cw.ProdID); err != nil {
		return err
	}
	if err := writeField(w, "X-RAPLACAL-TIME", now().UTC().Format("02.01.2006 15:04")); err != nil {
		return err
	}

	for _, evt := range events {
		if err := cw.writeEvent(w, evt); err != nil {
			return err
		}
	}

	return writeLine(w, "END:VCALENDAR")
}

func (cw *Writer) writeEvent(w io.Writer, evt *event.Event) error {
	if err := writeLine(w, "BEGIN:VEVENT"); err != nil {
		return err
	}
	if err := writeField(w, "UID", fmt.Sprintf("%d@%s", evt.Hash(), cw.Domain)); err != nil {
		return err
	}
	if evt.Creation != nil {
		if err := writeLine(w, "CREATED:"+formatStamp(*evt.Creation)); err != nil {
			return err
		}
	}
	if err := writeLine(w, "DTSTART:"+formatStamp(evt.Begin)); err != nil {
		return err
	}
	if err := writeLine(w, "DTEND:"+formatStamp(evt.End)); err != nil {
		return err
	}
	if err := writeField(w, "SUMMARY", evt.Title()); err != nil {
		return err
	}
	if len(evt.Locations) > 0 {
		if err := writeField(w, "LOCATION", strings.Join(evt.Locations, ", ")); err != nil {
			return err
		}
	}

	var description strings.Builder

	if evt.Details.Kind == event.KindLecture {
		if len(evt.Details.Categories) > 0 {
			fmt.Fprintf(&description, "%s\\n\\n", strings.Join(evt.Details.Categories, ", "))
			if err := writeLine(w, "CATEGORIES:"+strings.Join(evt.Details.Categories, ",")); err != nil {
				return err
			}
		}
		if evt.Details.Language != "" {
			fmt.Fprintf(&description, "Sprache: %s\\n", evt.Details.Language)
		}
		if evt.Details.TotalHours > 0 {
			fmt.Fprintf(&description, "Insgesamte Stunden: %d\\n", evt.Details.TotalHours)
		}
	}

	if len(evt.Lecturers) > 0 {
		if err := writeLine(w, fmt.Sprintf("ORGANIZER;CN=%q:%s", evt.Lecturers[0].Name, cw.Contact)); err != nil {
			return err
		}

		names := make([]string, len(evt.Lecturers))
		for i, lecturer := range evt.Lecturers {
			names[i] = lecturer.Name
		}
		fmt.Fprintf(&description, "Dozent:innen: %s\\n", strings.Join(names, ", "))

		for _, lecturer := range evt.Lecturers {
			if err := writeLine(w, fmt.Sprintf("ATTENDEE;CN=%q:%s", lecturer.Name, cw.Contact)); err != nil {
				return err
			}
		}
	} else {
		description.WriteString(privacyNotice)
	}

	for _, course := range evt.Courses {
		if err := writeLine(w, fmt.Sprintf("ATTENDEE;CN=%q:%s", course, cw.Contact)); err != nil {
			return err
		}
	}

	if err := writeField(w, "DESCRIPTION", description.String()); err != nil {
		return err
	}
	return writeLine(w, "END:VEVENT")
}

func formatStamp(t time.Time) string {
	return t.UTC().Format(dtFormat) + "00Z"
}

// writeField emits one key:value content line with commas in the value
// escaped before folding.
func writeField(w io.Writer, key, value string) error {
	return writeLine(w, key+":"+escapeCommas(value))
}

func escapeCommas(value string) string {
	return strings.ReplaceAll(value, ",", "\\,")
}

// writeLine folds one logical content line into physical lines of at most
// maxLineBytes bytes each, terminated with CRLF. Continuation lines are
// prefixed with a single space. The fold point never lands inside a
// multi-byte character.
func writeLine(w io.Writer, line string) error {
	first := true
	for len(line) > 0 {
		cut := 0
		for _, r := range line {
			size := utf8.RuneLen(r)
			if cut+size > maxLineBytes {
				break
			}
			cut += size
		}

		prefix := ""
		if !first {
			prefix = " "
		}
		if _, err := io.WriteString(w, prefix+line[:cut]+"\r\n"); err != nil {
			return err
		}
		line = line[cut:]
		first = false
	}
	return nil
}
