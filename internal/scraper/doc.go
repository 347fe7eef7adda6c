// Package scraper extracts events from Rapla month-view HTML exports.
//
// A document holds one div.calendar element per month, each containing a
// table whose td.month_cell cells are single days. Day cells hold one
// division with the day-of-month number followed by one division per event
// block. Two markup generations exist: the older one attaches a span tooltip
// with a metadata table to each event's anchor, the newer one inlines a
// single "HH:MM - HH:MM resource, resource" line. The tooltip span is the
// schema marker; each generation has its own block parser and everything
// downstream (identity, serialization, merging) is shared.
//
// Failure policy: missing html/body wrappers are fatal, everything below the
// month level is recoverable. A malformed event or day is logged with its
// offending fragment and skipped; a month without any extracted events yields
// no entry at all.
package scraper
