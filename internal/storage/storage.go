package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"raplacal/internal/event"
)

// ArchiveError reports a failed archive operation. Callers branch on it to
// distinguish archive I/O trouble from fatal pipeline errors.
type ArchiveError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Archive reads and writes the persisted Months mapping at a fixed path.
type Archive struct {
	path string
}

// New creates an Archive for path, expanding a leading ~ to the home
// directory.
func New(path string) (*Archive, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return &Archive{path: path}, nil
}

// Path returns the resolved archive location.
func (a *Archive) Path() string {
	return a.path
}

// Load reads the archived months. A missing or unreadable file is returned
// as an *ArchiveError; callers treat it as "no prior archive".
func (a *Archive) Load() (event.Months, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &ArchiveError{Op: "load", Path: a.path, Err: err}
	}

	var months event.Months
	if err := json.Unmarshal(data, &months); err != nil {
		return nil, &ArchiveError{Op: "load", Path: a.path, Err: err}
	}
	if months == nil {
		months = make(event.Months)
	}
	return months, nil
}

// Save writes the merged months back, creating the parent directory when
// needed and overwriting any previous archive.
func (a *Archive) Save(months event.Months) error {
	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ArchiveError{Op: "save", Path: a.path, Err: err}
		}
	}

	data, err := json.MarshalIndent(months, "", "  ")
	if err != nil {
		return &ArchiveError{Op: "save", Path: a.path, Err: err}
	}
	if err := os.WriteFile(a.path, data, 0644); err != nil {
		return &ArchiveError{Op: "save", Path: a.path, Err: err}
	}
	return nil
}
