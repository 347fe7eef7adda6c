package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"raplacal/internal/event"
)

func sampleMonths() event.Months {
	creation := time.Date(2023, 2, 1, 9, 15, 0, 0, time.UTC)
	return event.Months{
		"202302": {
			{
				Creation:  &creation,
				Creator:   "MUSTERMANN",
				Begin:     time.Date(2023, 2, 6, 7, 15, 0, 0, time.UTC),
				End:       time.Date(2023, 2, 6, 10, 30, 0, 0, time.UTC),
				Name:      "Mathematik II",
				Lecturers: []event.Lecturer{{Name: "Erika Musterfrau"}},
				Locations: []string{"Hörsaal 1"},
				Courses:   []string{"INF-23A"},
				Details: event.Details{
					Kind:       event.KindLecture,
					Number:     "T2INF1002",
					Language:   "Deutsch",
					KindLabel:  "Vorlesung",
					Categories: []string{"Pflicht"},
					TotalHours: 55,
				},
			},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	archive, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	saved := sampleMonths()
	if err := archive.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := archive.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	events := loaded["202302"]
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got, want := events[0], saved["202302"][0]
	if got.Name != want.Name || got.Creator != want.Creator {
		t.Errorf("event = %+v, want %+v", got, want)
	}
	if got.Creation == nil || !got.Creation.Equal(*want.Creation) {
		t.Errorf("Creation = %v, want %v", got.Creation, want.Creation)
	}
	if !got.Begin.Equal(want.Begin) || !got.End.Equal(want.End) {
		t.Errorf("times = %v/%v, want %v/%v", got.Begin, got.End, want.Begin, want.End)
	}
	if !reflect.DeepEqual(got.Details, want.Details) {
		t.Errorf("Details = %+v, want %+v", got.Details, want.Details)
	}
	if got.Hash() != want.Hash() {
		t.Error("identity must survive the archive round trip")
	}
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "archive.json")
	archive, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := archive.Save(sampleMonths()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("archive file missing: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	archive, err := New(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = archive.Load()
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("error = %v, want *ArchiveError", err)
	}
	if archiveErr.Op != "load" {
		t.Errorf("Op = %q, want load", archiveErr.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file must unwrap to os.ErrNotExist, got %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	archive, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var archiveErr *ArchiveError
	if _, err := archive.Load(); !errors.As(err, &archiveErr) {
		t.Fatalf("error = %v, want *ArchiveError", err)
	}
}
