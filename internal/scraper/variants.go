package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html"

	"raplacal/internal/dom"
	"raplacal/internal/event"
)

// wallClockLayout parses the glued dd.mm.yyHH:MM stamps of the tooltip
// markup generation.
const wallClockLayout = "02.01.0615:04"

// placeholderTitle stands in for the event name in the inline markup
// generation, which carries none.
const placeholderTitle = "Veranstaltung"

// blockParser converts one event block's anchor into an event. Each markup
// generation has its own implementation.
type blockParser interface {
	parse(link *html.Node, day dayContext) (*event.Event, error)
}

// resourceClassifier splits the comma-separated resource list into course
// codes and locations. Shared by both markup generations.
type resourceClassifier struct {
	groupPattern *regexp.Regexp
}

func newResourceClassifier() resourceClassifier {
	return resourceClassifier{
		groupPattern: regexp.MustCompile(`^[A-Z]{3}-[A-Z0-9 ]+$`),
	}
}

// classify assigns every trimmed resource token to exactly one of courses or
// locations. Tokens matching the course-code convention are courses,
// everything else is a location.
func (rc resourceClassifier) classify(resources string) (courses, locations []string) {
	if resources == "" {
		return nil, nil
	}
	for _, token := range strings.Split(resources, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if rc.groupPattern.MatchString(token) {
			courses = append(courses, token)
		} else {
			locations = append(locations, token)
		}
	}
	return courses, locations
}

// tooltipParser handles the older markup generation: a span tooltip attached
// to the anchor carries the type label, a metadata table and two auxiliary
// divisions with the creation time and the begin/end range.
type tooltipParser struct {
	resourceClassifier
	loc *time.Location
	// date and clock inside the "erstellt am" line, separator optional
	creationPattern *regexp.Regexp
}

func newTooltipParser(loc *time.Location) *tooltipParser {
	return &tooltipParser{
		resourceClassifier: newResourceClassifier(),
		loc:                loc,
		creationPattern:    regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{2})[ ,]*(\d{2}:\d{2})`),
	}
}

func (p *tooltipParser) parse(link *html.Node, _ dayContext) (*event.Event, error) {
	tooltip, ok := dom.ChildByTag(link, "span")
	if !ok {
		return nil, &ExtractionError{Field: "tooltip", Err: ErrMissingNode}
	}

	typeNode, ok := dom.ChildByTag(tooltip, "strong")
	if !ok {
		return nil, &ExtractionError{Field: "event type", Err: ErrMissingNode}
	}
	typeLabel, _ := dom.Text(typeNode)

	metadataNode, ok := dom.ChildByTag(tooltip, "table")
	if !ok {
		return nil, &ExtractionError{Field: "event metadata", Err: ErrMissingNode}
	}

	divs := dom.ChildrenByTag(tooltip, "div")
	if len(divs) < 2 {
		return nil, &ExtractionError{Field: "tooltip divisions", Err: ErrMissingNode}
	}

	creation, err := p.parseCreation(divs[0])
	if err != nil {
		return nil, err
	}
	begin, end, err := p.parseTimeRange(divs[1])
	if err != nil {
		return nil, err
	}

	metadata := parseMetadata(metadataNode)
	details, err := parseDetails(typeLabel, metadata)
	if err != nil {
		return nil, err
	}
	courses, locations := p.classify(metadata["Ressourcen"])

	return &event.Event{
		Creation:  &creation,
		Creator:   metadata["reserviert von"],
		Begin:     begin,
		End:       end,
		Name:      firstOf(metadata, "Veranstaltungsname", "Titel", "Name"),
		Locations: locations,
		Courses:   courses,
		Details:   details,
	}, nil
}

// parseCreation reads the "erstellt am" division. The text must literally
// start with the prefix after leading-whitespace trim; the following
// characters hold the dd.mm.yy date and HH:MM clock, glued together or
// separated depending on the site generation.
func (p *tooltipParser) parseCreation(div *html.Node) (time.Time, error) {
	text, ok := dom.Text(div)
	if !ok {
		return time.Time{}, &ExtractionError{Field: "creation time", Err: ErrMissingField}
	}

	rest, found := strings.CutPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), "erstellt am")
	if !found {
		return time.Time{}, &ExtractionError{Field: "creation prefix", Raw: text, Err: ErrMissingField}
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)

	m := p.creationPattern.FindStringSubmatch(rest)
	if m == nil {
		return time.Time{}, &ExtractionError{Field: "creation time", Raw: rest, Err: ErrBadTimeFormat}
	}

	t, err := time.ParseInLocation(wallClockLayout, m[1]+m[2], p.loc)
	if err != nil {
		return time.Time{}, &ExtractionError{Field: "creation time", Raw: rest, Err: err}
	}
	return t.UTC(), nil
}

// parseTimeRange reads the weekday/date/begin/end division, e.g.
// "Mo 06.02.23 08:15-11:30". The weekday token is discarded.
func (p *tooltipParser) parseTimeRange(div *html.Node) (begin, end time.Time, err error) {
	text, ok := dom.Text(div)
	if !ok {
		return time.Time{}, time.Time{}, &ExtractionError{Field: "event time range", Err: ErrMissingField}
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(fields) < 4 {
		return time.Time{}, time.Time{}, &ExtractionError{Field: "event time range", Raw: text, Err: ErrBadTimeFormat}
	}
	date := fields[1]

	begin, err = time.ParseInLocation(wallClockLayout, date+fields[2], p.loc)
	if err != nil {
		return time.Time{}, time.Time{}, &ExtractionError{Field: "event begin time", Raw: text, Err: err}
	}
	end, err = time.ParseInLocation(wallClockLayout, date+fields[3], p.loc)
	if err != nil {
		return time.Time{}, time.Time{}, &ExtractionError{Field: "event end time", Raw: text, Err: err}
	}
	if end.Before(begin) {
		return time.Time{}, time.Time{}, &ExtractionError{Field: "event time range", Raw: text, Err: ErrTimeOrder}
	}
	return begin.UTC(), end.UTC(), nil
}

// inlineParser handles the newer markup generation: the anchor holds a single
// free-text line with the time range and the resource list, and the date
// comes from the surrounding month heading and day cell.
type inlineParser struct {
	resourceClassifier
	loc         *time.Location
	linePattern *regexp.Regexp
}

func newInlineParser(loc *time.Location) *inlineParser {
	return &inlineParser{
		resourceClassifier: newResourceClassifier(),
		loc:                loc,
		linePattern:        regexp.MustCompile(`^\s*(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})\s*(.*)$`),
	}
}

func (p *inlineParser) parse(link *html.Node, day dayContext) (*event.Event, error) {
	text, ok := dom.Text(link)
	if !ok {
		return nil, &ExtractionError{Field: "event line", Err: ErrMissingField}
	}

	m := p.linePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, &ExtractionError{Field: "event line", Raw: text, Err: ErrBadTimeFormat}
	}
	if !day.ok {
		return nil, &ExtractionError{Field: "event date", Raw: text, Err: ErrNoDateContext}
	}

	begin, err := p.onDay(day, m[1])
	if err != nil {
		return nil, &ExtractionError{Field: "event begin time", Raw: text, Err: err}
	}
	end, err := p.onDay(day, m[2])
	if err != nil {
		return nil, &ExtractionError{Field: "event end time", Raw: text, Err: err}
	}
	if end.Before(begin) {
		return nil, &ExtractionError{Field: "event time range", Raw: text, Err: ErrTimeOrder}
	}

	courses, locations := p.classify(m[3])

	name := placeholderTitle
	if texts := dom.TextNodes(link); len(texts) > 1 {
		if trimmed := strings.TrimSpace(texts[1]); trimmed != "" {
			name = trimmed
		}
	}

	return &event.Event{
		Begin:     begin.UTC(),
		End:       end.UTC(),
		Name:      name,
		Locations: locations,
		Courses:   courses,
		Details:   event.Details{Kind: event.KindOther},
	}, nil
}

func (p *inlineParser) onDay(day dayContext, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, p.loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.year, day.month, day.day, t.Hour(), t.Minute(), 0, 0, p.loc), nil
}

// parseMetadata builds the key/value mapping from the tooltip's metadata
// table. Keys lose a trailing colon; rows with fewer than two cells or an
// empty value are skipped.
func parseMetadata(table *html.Node) map[string]string {
	metadata := make(map[string]string)
	tbody, ok := dom.ChildByTag(table, "tbody")
	if !ok {
		return metadata
	}
	for _, row := range dom.ChildrenByTag(tbody, "tr") {
		cells := dom.ChildrenByTag(row, "td")
		if len(cells) < 2 {
			continue
		}
		key, _ := dom.Text(cells[0])
		key = strings.TrimSuffix(key, ":")
		value, ok := dom.Text(cells[1])
		if !ok || value == "" {
			continue
		}
		metadata[key] = value
	}
	return metadata
}

// parseDetails resolves the event kind from the tooltip's type label and
// fills in the lecture-only metadata.
func parseDetails(typeLabel string, metadata map[string]string) (event.Details, error) {
	switch typeLabel {
	case "Lehrveranstaltung":
		details := event.Details{
			Kind:      event.KindLecture,
			Number:    metadata["Veranstaltungsnummer"],
			Language:  metadata["Sprache"],
			KindLabel: metadata["Veranstaltungsart"],
		}
		if categories := metadata["Veranstaltungskategorie"]; categories != "" {
			for _, category := range strings.Split(categories, ",") {
				details.Categories = append(details.Categories, strings.TrimSpace(category))
			}
		}
		if hours := metadata["Soll-Stunden"]; hours != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(hours)); err == nil {
				details.TotalHours = n
			}
		}
		return details, nil
	case "Prüfung":
		return event.Details{Kind: event.KindExam}, nil
	case "Sonstiger Termin":
		return event.Details{Kind: event.KindOther}, nil
	}
	return event.Details{}, &ExtractionError{Field: "event type", Raw: typeLabel, Err: ErrUnknownEventType}
}

// firstOf returns the first present metadata value among keys.
func firstOf(metadata map[string]string, keys ...string) string {
	for _, key := range keys {
		if value, ok := metadata[key]; ok {
			return value
		}
	}
	return ""
}
