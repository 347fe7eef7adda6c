package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"raplacal/internal/dom"
	"raplacal/internal/event"
	"raplacal/internal/logger"
)

// Scraper converts a decoded Rapla month-view document into events.
type Scraper struct {
	loc            *time.Location
	headingPattern *regexp.Regexp
	tooltip        *tooltipParser
	inline         *inlineParser
}

// New creates a Scraper interpreting all wall-clock text in loc.
func New(loc *time.Location) *Scraper {
	return &Scraper{
		loc: loc,
		// Heading like "März 2023" above the month table
		headingPattern: regexp.MustCompile(`^(\p{L}+) (\d{4})$`),
		tooltip:        newTooltipParser(loc),
		inline:         newInlineParser(loc),
	}
}

// LoadEvents decodes and parses the raw document and extracts all events,
// bucketed by month. Missing top-level wrappers are fatal; every failure
// below that is logged and skipped.
func (s *Scraper) LoadEvents(r io.Reader) (event.Months, error) {
	doc, err := goquery.NewDocumentFromReader(dom.Decode(r))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	root := doc.Find("html")
	if root.Length() == 0 {
		return nil, &StructuralError{Missing: "html"}
	}
	body := root.ChildrenFiltered("body")
	if body.Length() == 0 {
		return nil, &StructuralError{Missing: "body"}
	}

	months := make(event.Months)
	body.ChildrenFiltered("div.calendar").Each(func(_ int, sel *goquery.Selection) {
		period, events := s.loadMonth(sel.Nodes[0])
		if len(events) > 0 {
			months[period] = events
		}
	})

	return months, nil
}

// loadMonth walks one div.calendar element. The period key is derived from
// the first event's end date.
func (s *Scraper) loadMonth(month *html.Node) (string, []*event.Event) {
	ctx := s.monthContext(month)

	table, ok := dom.ChildByTag(month, "table")
	if !ok {
		return "", nil
	}
	tbody, ok := dom.ChildByTag(table, "tbody")
	if !ok {
		return "", nil
	}

	var events []*event.Event
	for _, row := range dom.ChildrenByTag(tbody, "tr") {
		for _, cell := range dom.ChildrenByTag(row, "td") {
			if class, _ := dom.Attr(cell, "class"); class != "month_cell" {
				continue
			}
			events = append(events, s.loadDay(cell, ctx)...)
		}
	}

	if len(events) == 0 {
		return "", nil
	}
	return event.PeriodKey(events[0].End), events
}

// monthContext reads the year and month from the calendar heading. Only the
// inline markup generation needs it; a missing heading surfaces later as a
// per-event failure, not here.
func (s *Scraper) monthContext(month *html.Node) monthContext {
	for c := month.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		text, ok := dom.Text(c)
		if !ok {
			continue
		}
		m := s.headingPattern.FindStringSubmatch(strings.TrimSpace(text))
		if m == nil {
			continue
		}
		mon, err := monthFromGerman(m[1])
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		return monthContext{year: year, month: mon, ok: true}
	}
	return monthContext{}
}

// loadDay extracts the events of a single day cell. A cell with fewer than
// two divisions holds no events at all. The first division carries the
// day-of-month number, every further division must be a marked event block.
func (s *Scraper) loadDay(cell *html.Node, ctx monthContext) []*event.Event {
	divs := dom.ChildrenByTag(cell, "div")
	if len(divs) < 2 {
		return nil
	}

	day := dayContext{year: ctx.year, month: ctx.month}
	if text, ok := dom.Text(divs[0]); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			day.day = n
			day.ok = ctx.ok
		}
	}

	events := make([]*event.Event, 0, len(divs)-1)
	for _, div := range divs[1:] {
		if class, _ := dom.Attr(div, "class"); class != "month_block" {
			content, _ := dom.Text(div)
			logger.Warn("skipping potential event", logger.Fields{
				"class":   class,
				"content": content,
			})
			logger.Incr("scraper.blocks_skipped")
			continue
		}

		evt, err := s.parseBlock(div, day)
		if err != nil {
			logger.Warn("skipping unparseable event", logger.Fields{
				"error": err.Error(),
			})
			logger.Incr("scraper.events_skipped")
			continue
		}
		logger.Incr("scraper.events_extracted")
		events = append(events, evt)
	}
	return events
}

func (s *Scraper) parseBlock(block *html.Node, day dayContext) (*event.Event, error) {
	link, ok := dom.ChildByTag(block, "a")
	if !ok {
		return nil, &ExtractionError{Field: "event link", Err: ErrMissingNode}
	}
	return s.parserFor(link).parse(link, day)
}

// parserFor selects the block parser by schema marker: anchors of the older
// markup generation carry a span tooltip.
func (s *Scraper) parserFor(link *html.Node) blockParser {
	if _, ok := dom.ChildByTag(link, "span"); ok {
		return s.tooltip
	}
	return s.inline
}

// monthContext is the year/month scraped from a calendar heading.
type monthContext struct {
	year  int
	month time.Month
	ok    bool
}

// dayContext is the full date context handed to block parsers. ok is false
// when either the heading or the day number could not be read; only the
// inline parser cares.
type dayContext struct {
	year  int
	month time.Month
	day   int
	ok    bool
}

// monthFromGerman resolves a German month name, case-insensitively.
func monthFromGerman(name string) (time.Month, error) {
	switch strings.ToLower(name) {
	case "januar":
		return time.January, nil
	case "februar":
		return time.February, nil
	case "märz":
		return time.March, nil
	case "april":
		return time.April, nil
	case "mai":
		return time.May, nil
	case "juni":
		return time.June, nil
	case "juli":
		return time.July, nil
	case "august":
		return time.August, nil
	case "september":
		return time.September, nil
	case "oktober":
		return time.October, nil
	case "november":
		return time.November, nil
	case "dezember":
		return time.December, nil
	}
	return 0, fmt.Errorf("unknown month name %q", name)
}
