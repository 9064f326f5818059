package scanlog

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/harrylevesque/nfcnav/internal/tagref"
)

// DefaultCapacity is the number of scans kept when no capacity is given.
const DefaultCapacity = 50

// ErrNotFound is returned by Get for an unknown entry id.
var ErrNotFound = errors.New("scan not found")

// Entry is one tag in the scan log.
type Entry struct {
	ID          string            `json:"id"`
	Fingerprint string            `json:"fingerprint"`
	Tag         tagref.ScannedTag `json:"tag"`
	FirstSeen   time.Time         `json:"first_seen"`
	LastSeen    time.Time         `json:"last_seen"`
	Count       int               `json:"count"`
}

// Store keeps the most recent scans, newest first. With a file path the log
// is written through to a JSON file and reloaded on startup.
type Store struct {
	filePath string
	capacity int
	now      func() time.Time

	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates a store holding up to capacity scans. filePath may be
// empty for a memory-only log.
func NewStore(filePath string, capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		filePath: filePath,
		capacity: capacity,
		now:      time.Now,
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load scan log %s: %w", filePath, err)
	}
	return s, nil
}

// Fingerprint identifies a tag by id, payload and tech types.
func Fingerprint(tag tagref.ScannedTag) string {
	h := sha3.New256()
	h.Write([]byte(tag.ID))
	h.Write([]byte{0})
	h.Write([]byte(tag.Payload))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(tag.TechTypes, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

// Add records a scan. A tag already in the log moves to the front with its
// count bumped and its record replaced by the new one.
func (s *Store) Add(tag tagref.ScannedTag) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := Fingerprint(tag)
	now := s.now().UTC()

	e := Entry{
		ID:          uuid.NewString(),
		Fingerprint: fp,
		Tag:         tag,
		FirstSeen:   now,
		LastSeen:    now,
		Count:       1,
	}
	entries := make([]Entry, 0, len(s.entries)+1)
	entries = append(entries, e)
	for _, v := range s.entries {
		if v.Fingerprint == fp {
			entries[0].ID = v.ID
			entries[0].FirstSeen = v.FirstSeen
			entries[0].Count = v.Count + 1
			continue
		}
		entries = append(entries, v)
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}

	// The log only changes once the file agrees.
	if err := s.save(entries); err != nil {
		return Entry{}, err
	}
	s.entries = entries
	return entries[0], nil
}

// List returns the scans, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Clear drops every entry and removes the backing file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filePath != "" {
		if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	s.entries = nil
	return nil
}

// save writes entries to the backing file; callers hold mu.
func (s *Store) save(entries []Entry) error {
	if s.filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("create scan log dir: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scan log: %w", err)
	}
	return os.Rename(tmp, s.filePath)
}

func (s *Store) load() error {
	if s.filePath == "" {
		return nil
	}

	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []Entry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return err
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
	return nil
}
