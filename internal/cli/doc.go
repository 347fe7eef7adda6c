// Package cli implements the raplacal command.
//
// The command wires the pipeline end to end: open the downloaded Rapla HTML
// export, extract its events, optionally merge them over the persisted
// archive, and write the iCalendar file. Archive trouble is reported but
// never prevents calendar output; only structural input errors abort the run.
package cli
