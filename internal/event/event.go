package event

import (
	"encoding/binary"
	"hash/fnv"
	"io"
	"time"
)

// Kind classifies an event by the Rapla type label it was scraped from.
type Kind string

const (
	KindLecture Kind = "lecture"
	KindExam    Kind = "exam"
	KindOther   Kind = "other"
)

// Event represents one calendar occurrence scraped from a Rapla month page.
type Event struct {
	Creation  *time.Time `json:"creation,omitempty"` // when the record was authored upstream
	Creator   string     `json:"creator,omitempty"`  // who reserved the slot
	Begin     time.Time  `json:"begin"`
	End       time.Time  `json:"end"`
	Name      string     `json:"name"`
	Lecturers []Lecturer `json:"lecturers"`
	Locations []string   `json:"locations"`
	Courses   []string   `json:"courses"`
	Details   Details    `json:"details"`
}

// Lecturer is a named participant of an event.
type Lecturer struct {
	Name string `json:"name"`
}

// Details carries the kind discriminator plus the lecture-only metadata.
// The non-kind fields are only populated when Kind is KindLecture.
type Details struct {
	Kind Kind `json:"kind"`
	// The Rapla event number. Not unique on its own.
	Number string `json:"number,omitempty"`
	// Language as loaded from Rapla.
	Language string `json:"language,omitempty"`
	// Kind label as loaded from Rapla, e.g. "Vorlesung".
	KindLabel string `json:"kind_label,omitempty"`
	// Categories as loaded from Rapla.
	Categories []string `json:"categories,omitempty"`
	// Total number of hours for the lecture module.
	TotalHours int `json:"total_hours,omitempty"`
}

// Hash returns the stable 64-bit identity of the event, computed from the
// creation time (epoch seconds, 0 when absent), the name, the begin date and
// the creator. Locations, courses, lecturers and details do not participate,
// so two distinct events sharing those four fields collide. Fields are framed
// with length-free NUL separators; none of the hashed values can contain NUL.
func (e *Event) Hash() uint64 {
	h := fnv.New64a()

	var buf [8]byte
	var creation int64
	if e.Creation != nil {
		creation = e.Creation.Unix()
	}
	binary.BigEndian.PutUint64(buf[:], uint64(creation))
	h.Write(buf[:])

	io.WriteString(h, e.Name)
	h.Write([]byte{0})

	year, month, day := e.Begin.UTC().Date()
	binary.BigEndian.PutUint32(buf[:4], uint32(year))
	h.Write(buf[:4])
	h.Write([]byte{byte(month), byte(day), 0})

	io.WriteString(h, e.Creator)

	return h.Sum64()
}

// Title returns the display title for calendar output: the name, suffixed
// with the lecture kind label when one is present.
func (e *Event) Title() string {
	if e.Details.Kind == KindLecture && e.Details.KindLabel != "" {
		return e.Name + " - " + e.Details.KindLabel
	}
	return e.Name
}
