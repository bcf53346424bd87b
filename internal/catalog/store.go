package catalog

import (
	"sync/atomic"
)

// Catalog is an immutable snapshot of all converter records, ordered by
// article number.
type Catalog struct {
	records []*ConverterRecord
	byArtnr map[string]*ConverterRecord
}

// All returns every record in stable article-number order. Callers must
// not mutate the returned slice's records.
func (c *Catalog) All() []*ConverterRecord {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// ByArtnr looks up a record by its canonical article number string.
func (c *Catalog) ByArtnr(artnr string) (*ConverterRecord, bool) {
	rec, ok := c.byArtnr[artnr]
	return rec, ok
}

// New builds a snapshot from already-typed records, mainly for tests.
func New(records []*ConverterRecord) *Catalog {
	byArtnr := make(map[string]*ConverterRecord, len(records))
	for _, rec := range records {
		byArtnr[rec.Artnr()] = rec
	}
	return &Catalog{records: records, byArtnr: byArtnr}
}

// Store holds the current catalog snapshot. Replace swaps the whole
// snapshot atomically so in-flight queries observe either the old or the
// new catalog in full, never a partial update.
type Store struct {
	snap atomic.Pointer[Catalog]
}

// NewStore creates a store seeded with an initial snapshot.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.snap.Store(c)
	return s
}

// Snapshot returns the current catalog. The result stays valid for the
// duration of a query even if Replace runs concurrently.
func (s *Store) Snapshot() *Catalog {
	return s.snap.Load()
}

// Replace swaps in a freshly ingested catalog.
func (s *Store) Replace(c *Catalog) {
	s.snap.Store(c)
}

// Reload reads the catalog file at path and swaps it in.
func (s *Store) Reload(path string) error {
	c, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Replace(c)
	return nil
}
