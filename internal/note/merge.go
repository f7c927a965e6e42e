// Package note merges free-text messages into a day's timer notes without
// duplicating or losing prior content.
package note

import (
	"fmt"
	"strings"
	"time"
)

// Marker returns the upsert key embedded in the notes for the given day.
// Keying on an explicit marker rather than matching message text keeps the
// merge idempotent and leaves hand-written notes alone.
func Marker(day time.Time) string {
	return fmt.Sprintf("[clockhand %s]", day.Format("2006-01-02"))
}

// Merge upserts message into the existing notes under the given day's
// marker. A marker line already present for the day is replaced in place;
// otherwise a new marker line is appended. Every other line, including
// marker lines for other days, is preserved verbatim.
//
// Line breaks in the message are flattened to spaces so the day's note
// stays a single marker line.
//
// Merge is pure and idempotent: applying the same (day, message) twice
// yields the same result as applying it once.
func Merge(existing string, day time.Time, message string) string {
	marker := Marker(day)
	line := marker + " " + flatten(message)
	if existing == "" {
		return line
	}

	lines := strings.Split(existing, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, marker) {
			lines[i] = line
			return strings.Join(lines, "\n")
		}
	}
	return existing + "\n" + line
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func flatten(s string) string {
	return lineBreaks.Replace(s)
}
