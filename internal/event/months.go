package event

import (
	"sort"
	"time"
)

// Months maps a YYYYMM period key to the ordered events of that period.
// The fixed-width key makes lexicographic order chronological.
type Months map[string][]*Event

// PeriodKey derives the month bucket key from an event's end date.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("200601")
}

// Merge combines a freshly scraped mapping with an archived one. The archive
// is copied first, then every period present in fresh overwrites the archived
// entry wholesale. Periods only present in the archive are retained. There is
// no event-level union within a period: re-scraping a partially rendered
// month replaces whatever the archive held for it.
func Merge(fresh, archived Months) Months {
	merged := make(Months, len(archived)+len(fresh))
	for period, events := range archived {
		merged[period] = events
	}
	for period, events := range fresh {
		merged[period] = events
	}
	return merged
}

// SortedKeys returns the period keys in chronological order.
func (m Months) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for period := range m {
		keys = append(keys, period)
	}
	sort.Strings(keys)
	return keys
}

// Flatten returns all events ordered by period.
func (m Months) Flatten() []*Event {
	var events []*Event
	for _, period := range m.SortedKeys() {
		events = append(events, m[period]...)
	}
	return events
}
