package transform

import (
	"strings"
	"time"
)

// CanonicalDateLayout is the single calendar-date format of trade payloads.
const CanonicalDateLayout = "2006-01-02"

var acceptedDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	CanonicalDateLayout,
	time.RFC3339,
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// canonicalDate reformats an accepted date and passes anything else through.
func canonicalDate(value string) string {
	if t, ok := parseDate(value); ok {
		return t.Format(CanonicalDateLayout)
	}
	return value
}

// exportDate reformats the storage-document export date, falling back to
// today's UTC date when the input is missing or unparsable.
func (t *Transformer) exportDate(value string) string {
	if parsed, ok := parseDate(value); ok {
		return parsed.Format(CanonicalDateLayout)
	}
	return t.now().UTC().Format(CanonicalDateLayout)
}
