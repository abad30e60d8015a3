package app

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/YoshitsuguKoike/docrev/internal/application/port/output"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// JournalWriter appends patch records to an NDJSON file
type JournalWriter struct {
	fs   afero.Fs
	path string
	Now  func() time.Time // Time provider (for testing)

	mu      sync.Mutex
	entropy io.Reader
}

// NewJournalWriter creates a JournalWriter for path on fs
func NewJournalWriter(fs afero.Fs, path string) *JournalWriter {
	return &JournalWriter{
		fs:      fs,
		path:    path,
		Now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Path returns the journal file path
func (w *JournalWriter) Path() string {
	return w.path
}

// Append writes one record as a JSON line. Missing ID and timestamp are filled in.
func (w *JournalWriter) Append(rec *output.PatchRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.Now()
	if rec.ID == "" {
		rec.ID = ulid.MustNew(ulid.Timestamp(now), w.entropy).String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now.UTC()
	}

	if dir := filepath.Dir(w.path); dir != "" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	f, err := w.fs.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(append(b, '\n')); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if err := f.Sync(); err != nil {
		// The line is written; durability is best effort
		GetLogger().Warn("failed to fsync journal: %v", err)
	}
	return nil
}

// ReadJournal returns every record in the journal at path, oldest first
func ReadJournal(fs afero.Fs, path string) ([]output.PatchRecord, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []output.PatchRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec output.PatchRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return records, fmt.Errorf("corrupted journal line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, sc.Err()
}
