// Package store implements the file-backed record stores that hold each
// entity collection in memory. A store is the sole writer of its backing
// file; Save is the only durability point and Load is called once at
// startup. All other operations work on the in-memory collection.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cargohub/cargohub/internal/entity"
	"github.com/cargohub/cargohub/internal/shared"
)

// Record is implemented by every entity through its embedded metadata.
type Record interface {
	Meta() *entity.Metadata
}

// Store keeps one entity collection ordered by id. Mutating methods come
// in two forms: the plain form takes the store's own write lock, the
// *Locked form assumes the caller already holds it (directly or through
// Registry.Lock). Mutations are in-memory only until Save runs.
type Store[T any, PT interface {
	Record
	*T
}] struct {
	kind    entity.Kind
	path    string
	mu      sync.RWMutex
	records []T
	nextID  int64
}

// New builds an empty store whose backing file lives under dir and is
// named after the kind.
func New[T any, PT interface {
	Record
	*T
}](kind entity.Kind, dir string) *Store[T, PT] {
	return &Store[T, PT]{
		kind:   kind,
		path:   filepath.Join(dir, string(kind)+".json"),
		nextID: 1,
	}
}

// Kind returns the entity kind this store owns.
func (s *Store[T, PT]) Kind() entity.Kind { return s.kind }

// Lock, Unlock, RLock and RUnlock expose the store mutex so that
// cross-store workflows can hold several stores at once. Multi-store
// callers must acquire through Registry.Lock to keep the global ordering.
func (s *Store[T, PT]) Lock()    { s.mu.Lock() }
func (s *Store[T, PT]) Unlock()  { s.mu.Unlock() }
func (s *Store[T, PT]) RLock()   { s.mu.RLock() }
func (s *Store[T, PT]) RUnlock() { s.mu.RUnlock() }

// Load parses the backing file into the in-memory collection. An absent
// or empty file means no records. The id counter resumes above the
// highest id ever stored, so ids are never reused.
func (s *Store[T, PT]) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.records = nil
		s.nextID = 1
		return nil
	}
	if err != nil {
		return fmt.Errorf("store %s: read: %w", s.kind, err)
	}
	if len(data) == 0 {
		s.records = nil
		s.nextID = 1
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("store %s: parse: %w", s.kind, err)
	}
	s.records = records
	s.nextID = 1
	for i := range s.records {
		if id := PT(&s.records[i]).Meta().ID; id >= s.nextID {
			s.nextID = id + 1
		}
	}
	return nil
}

// Save serializes the full collection, soft-deleted records included,
// overwriting the backing file. The write goes through a temp file and a
// rename so a crash mid-write cannot truncate the previous state.
func (s *Store[T, PT]) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SaveLocked()
}

// SaveLocked is Save for callers already holding the store lock.
func (s *Store[T, PT]) SaveLocked() error {
	records := s.records
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store %s: encode: %w", s.kind, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store %s: mkdir: %w", s.kind, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store %s: write: %w", s.kind, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store %s: rename: %w", s.kind, err)
	}
	return nil
}

// List returns copies of the non-deleted records in id order.
func (s *Store[T, PT]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ListLocked()
}

// ListLocked is List for callers already holding the store lock.
func (s *Store[T, PT]) ListLocked() []T {
	out := make([]T, 0, len(s.records))
	for i := range s.records {
		if !PT(&s.records[i]).Meta().IsDeleted {
			out = append(out, s.records[i])
		}
	}
	return out
}

// ListAllLocked returns every record including the soft-deleted ones.
// Internal callers only; soft-deleted records stay invisible to the API.
func (s *Store[T, PT]) ListAllLocked() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns a copy of the non-deleted record with the given id.
// Soft-deleted records answer ErrNotFound, same as absent ones.
func (s *Store[T, PT]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.GetLocked(id)
}

// GetLocked is Get for callers already holding the store lock.
func (s *Store[T, PT]) GetLocked(id int64) (T, error) {
	if i, ok := s.indexOf(id); ok {
		return s.records[i], nil
	}
	var zero T
	return zero, shared.ErrNotFound
}

// ExistsLocked reports whether a non-deleted record with the id exists.
func (s *Store[T, PT]) ExistsLocked(id int64) bool {
	_, ok := s.indexOf(id)
	return ok
}

// Create assigns the next id, stamps both timestamps and appends the
// record. The collection is not persisted until Save.
func (s *Store[T, PT]) Create(rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CreateLocked(rec)
}

// CreateLocked is Create for callers already holding the store lock.
func (s *Store[T, PT]) CreateLocked(rec T) T {
	meta := PT(&rec).Meta()
	now := time.Now().UTC()
	meta.ID = s.nextID
	s.nextID++
	meta.CreatedAt = now
	meta.UpdatedAt = now
	meta.IsDeleted = false
	s.records = append(s.records, rec)
	return rec
}

// Update applies fn to the record in place and refreshes the update
// timestamp. The id, creation timestamp and deletion flag survive fn.
// Absent and soft-deleted ids answer ErrNotFound.
func (s *Store[T, PT]) Update(id int64, fn func(PT)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdateLocked(id, fn)
}

// UpdateLocked is Update for callers already holding the store lock.
func (s *Store[T, PT]) UpdateLocked(id int64, fn func(PT)) (T, error) {
	i, ok := s.indexOf(id)
	if !ok {
		var zero T
		return zero, shared.ErrNotFound
	}
	ptr := PT(&s.records[i])
	meta := *ptr.Meta()
	fn(ptr)
	updated := ptr.Meta()
	updated.ID = meta.ID
	updated.CreatedAt = meta.CreatedAt
	updated.IsDeleted = meta.IsDeleted
	updated.UpdatedAt = time.Now().UTC()
	return s.records[i], nil
}

// SoftDelete flips the deletion flag. Deleting an already-deleted record
// behaves exactly like deleting an unknown id: ErrNotFound, no side
// effects.
func (s *Store[T, PT]) SoftDelete(id int64) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SoftDeleteLocked(id)
}

// SoftDeleteLocked is SoftDelete for callers already holding the store lock.
func (s *Store[T, PT]) SoftDeleteLocked(id int64) (T, error) {
	i, ok := s.indexOf(id)
	if !ok {
		var zero T
		return zero, shared.ErrNotFound
	}
	meta := PT(&s.records[i]).Meta()
	meta.IsDeleted = true
	meta.UpdatedAt = time.Now().UTC()
	return s.records[i], nil
}

// indexOf locates a non-deleted record by id.
func (s *Store[T, PT]) indexOf(id int64) (int, bool) {
	for i := range s.records {
		meta := PT(&s.records[i]).Meta()
		if meta.ID == id && !meta.IsDeleted {
			return i, true
		}
	}
	return 0, false
}
