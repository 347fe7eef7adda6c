// Package event provides the data model for scraped Rapla events.
//
// Events are created once per extraction pass and treated as immutable. They
// are bucketed into a Months mapping keyed by YYYYMM, which is also the unit
// of archive persistence and merging. Each event carries a deterministic
// 64-bit identity derived from a fixed subset of its fields, used for
// iCalendar UIDs and for deduplication across archive merges.
package event
