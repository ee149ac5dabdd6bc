// Package dataset persists scrape snapshots as one append-only JSON file
// per source per calendar day.
package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"careerwatch/internal/extract"
)

// File is the on-disk dataset document: an ordered list of snapshots in
// append order.
type File struct {
	Data []extract.Snapshot `json:"data"`
}

type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store owns the data directory. One writer per (source, day) file is
// assumed within a process.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StoreError{Path: dir, Err: err}
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the dataset file for a source on a given day:
// <dir>/<source>_<YYYY-MM-DD>.json.
func (s *Store) Path(source string, day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", source, day.Format("2006-01-02")))
}

// Append merges a snapshot into the day's dataset file. Existing content is
// preserved; a corrupt file is logged and treated as empty so it never
// blocks new data from being recorded. The write commits only after the
// full in-memory merge succeeds.
func (s *Store) Append(source string, day time.Time, snap extract.Snapshot) error {
	path := s.Path(source, day)

	file := File{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, &file); jsonErr != nil {
			slog.Warn("dataset file is corrupt, starting fresh",
				"path", path, "err", jsonErr)
			file = File{}
		}
	case os.IsNotExist(err):
		// First successful scrape of the day.
	default:
		return &StoreError{Path: path, Err: err}
	}

	file.Data = append(file.Data, snap)

	out, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return &StoreError{Path: path, Err: err}
	}
	if err := writeAtomic(path, out); err != nil {
		return &StoreError{Path: path, Err: err}
	}
	return nil
}

// Read loads a dataset file as written by Append.
func Read(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return File{}, err
	}
	return file, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
