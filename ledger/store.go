package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"contactledger/models"
)

// FileName is the ledger file created inside the configured data directory.
const FileName = "contacted.csv"

const defaultCacheTTL = 60 * time.Second

// Store owns the contact ledger: the backing CSV file and an in-memory cache
// over it with bounded staleness. Construct one with Open at startup and pass
// it by reference; all methods are safe for concurrent use. The file is
// append-only — rows are added, never rewritten.
type Store struct {
	path string
	ttl  time.Duration

	mu       sync.RWMutex
	records  []models.ContactRecord
	latest   map[string]int // companyId → index of its most recent active record
	loadedAt time.Time
}

type Option func(*Store)

// WithCacheTTL overrides the staleness bound on the in-memory cache.
// A zero or negative TTL reloads from disk on every read.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// Open prepares the data directory and the ledger file, then loads the cache.
// A missing file is created with the header row; an existing file whose first
// line is not the expected header is an error — the store never rewrites a
// file it does not recognise, since that would discard every record in it.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, &StorageError{Op: "mkdir", Err: err}
	}

	s := &Store{
		path:   filepath.Join(dir, FileName),
		ttl:    defaultCacheTTL,
		latest: map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) ensureFile() error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.writeHeader()
	}
	if err != nil {
		return &StorageError{Op: "open", Err: err}
	}
	defer f.Close()

	first, err := csv.NewReader(f).Read()
	if err == io.EOF {
		// Zero-byte file, e.g. left behind by an interrupted earlier run.
		return s.writeHeader()
	}
	if err != nil {
		return &StorageError{Op: "read header", Err: err}
	}
	if !headerMatches(first) {
		return &StorageError{Op: "validate header", Err: fmt.Errorf("unexpected header %v in %s", first, s.path)}
	}
	return nil
}

func (s *Store) writeHeader() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &StorageError{Op: "create", Err: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write(ledgerHeader); err != nil {
		f.Close()
		return &StorageError{Op: "write header", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &StorageError{Op: "write header", Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "write header", Err: err}
	}
	return nil
}

// Lookup reports the current contact status for companyID. The cache is
// reloaded first if it has gone stale; a reload failure is logged and the
// previous cache keeps serving, so the read path never fails.
func (s *Store) Lookup(companyID string) models.ContactStatus {
	s.mu.RLock()
	if s.freshLocked() {
		status := s.statusLocked(companyID)
		s.mu.RUnlock()
		return status
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.freshLocked() {
		s.reloadLocked()
	}
	return s.statusLocked(companyID)
}

// Register records a contact event for companyID. If the company already has
// an active record the ledger is untouched and the original contactor is
// reported back, so registering twice never creates a second active row.
func (s *Store) Register(companyID, companyName, contactorName string) (models.ContactStatus, error) {
	companyID = strings.TrimSpace(companyID)
	companyName = strings.TrimSpace(companyName)
	contactorName = strings.TrimSpace(contactorName)
	switch {
	case companyID == "":
		return models.ContactStatus{}, &ValidationError{Field: "companyId"}
	case companyName == "":
		return models.ContactStatus{}, &ValidationError{Field: "companyName"}
	case contactorName == "":
		return models.ContactStatus{}, &ValidationError{Field: "contactorName"}
	}

	// The duplicate check and the append must not interleave with another
	// Register for the same company, so the whole sequence holds the write
	// lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.freshLocked() {
		s.reloadLocked()
	}
	if status := s.statusLocked(companyID); status.IsContacted {
		return status, nil
	}

	rec := models.ContactRecord{
		CompanyID:     companyID,
		CompanyName:   companyName,
		ContactorName: contactorName,
		Timestamp:     time.Now().UTC(),
		IsContacted:   true,
	}

	// File first: if the append fails the cache is untouched and the two can
	// never diverge.
	if err := s.appendRecord(rec); err != nil {
		return models.ContactStatus{}, err
	}
	s.records = append(s.records, rec)
	s.latest[rec.CompanyID] = len(s.records) - 1

	return models.ContactStatus{IsContacted: true, ContactorName: rec.ContactorName}, nil
}

// Reload replaces the cache with the current file content. The cache is a
// pure function of the file: reopening the store over the same file yields
// identical lookup answers. The lock is held across the read as well as the
// install, so a reload can never clobber the cache with a snapshot taken
// before a concurrent Register appended.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, latest, err := s.readAll()
	if err != nil {
		return err
	}
	s.records, s.latest, s.loadedAt = records, latest, time.Now()
	return nil
}

// RunRefresher forces a reload every interval until ctx is cancelled. It
// keeps the cache warm on hosts that suspend idle processes; correctness
// never depends on it.
func (s *Store) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Reload(); err != nil {
				log.Printf("[ledger] refresh failed: %v", err)
			}
		}
	}
}

// freshLocked reports whether the cache can serve without touching disk.
// An empty cache is never fresh, matching first use and empty-ledger cases.
func (s *Store) freshLocked() bool {
	return len(s.records) > 0 && time.Since(s.loadedAt) < s.ttl
}

func (s *Store) statusLocked(companyID string) models.ContactStatus {
	if i, ok := s.latest[companyID]; ok {
		return models.ContactStatus{IsContacted: true, ContactorName: s.records[i].ContactorName}
	}
	return models.ContactStatus{}
}

func (s *Store) reloadLocked() {
	records, latest, err := s.readAll()
	if err != nil {
		log.Printf("[ledger] reload failed, serving cached data: %v", err)
		return
	}
	s.records, s.latest, s.loadedAt = records, latest, time.Now()
}

// readAll parses the whole file into a record slice plus the companyId →
// latest-active-record index. Malformed data lines are skipped with a log
// line rather than failing the load.
func (s *Store) readAll() ([]models.ContactRecord, map[string]int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, &StorageError{Op: "open", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, &StorageError{Op: "read", Err: err}
	}

	var records []models.ContactRecord
	latest := map[string]int{}
	for i, row := range rows {
		if i == 0 {
			continue // header, validated at Open
		}
		rec, err := decodeRecord(row)
		if err != nil {
			log.Printf("[ledger] skipping line %d of %s: %v", i+1, s.path, err)
			continue
		}
		records = append(records, rec)
		if rec.IsContacted {
			// Later rows win: the index always points at the most recently
			// appended active record for the company.
			latest[rec.CompanyID] = len(records) - 1
		}
	}
	return records, latest, nil
}

func (s *Store) appendRecord(rec models.ContactRecord) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &StorageError{Op: "open", Err: err}
	}
	w := csv.NewWriter(f)
	if err := w.Write(encodeRecord(rec)); err != nil {
		f.Close()
		return &StorageError{Op: "append", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &StorageError{Op: "append", Err: err}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "append", Err: err}
	}
	return nil
}
