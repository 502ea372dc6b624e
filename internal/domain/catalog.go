package domain

import (
	"sync"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// Catalog owns the ordered list of scanned map entries. Replace, Merge and
// Remove are the only mutators and are serialized by mu.
type Catalog struct {
	mu         sync.RWMutex
	dir        m.Path
	entries    []m.MapEntry
	generation uint64
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Replace discards the current entries and installs a fresh scan result.
// The generation is bumped so completions issued against the old entries
// can be recognised as stale.
func (c *Catalog) Replace(dir m.Path, entries []m.MapEntry) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dir = dir
	c.entries = append([]m.MapEntry(nil), entries...)
	c.generation++

	return c.generation
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []m.MapEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]m.MapEntry(nil), c.entries...)
}

// Directory returns the directory the current entries were scanned from.
func (c *Catalog) Directory() m.Path {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dir
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Generation returns the current scan generation.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}

// Lookup resolves a display name to its entry.
func (c *Catalog) Lookup(name string) (m.MapEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}

	return m.MapEntry{}, false
}

// Snapshot captures the hashed entries, in order, for a verification request.
func (c *Catalog) Snapshot() VerificationRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	req := VerificationRequest{Generation: c.generation}

	for _, e := range c.entries {
		if !e.Hashed() {
			continue
		}

		req.Entries = append(req.Entries, e)
		req.Digests = append(req.Digests, e.Digest)
	}

	return req
}

// Merge copies classifications from a resolved snapshot into the live
// entries, matching by path. Snapshot entries the reply did not cover are
// reset to unset. It fails with ErrStaleVerification when the catalog has been
// replaced since the snapshot was taken. Entries removed in the meantime are
// skipped. The number of entries that received a label is returned.
func (c *Catalog) Merge(resolved VerificationRequest) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if resolved.Generation != c.generation {
		return 0, ErrStaleVerification
	}

	byPath := make(map[m.Path]int, len(c.entries))
	for i, e := range c.entries {
		byPath[e.Path] = i
	}

	merged := 0

	for _, e := range resolved.Entries {
		i, ok := byPath[e.Path]
		if !ok {
			continue
		}

		c.entries[i].Classification = e.Classification

		if e.Classification.IsSet() {
			merged++
		}
	}

	return merged, nil
}

// Remove drops the entries with the given names, keeping the order of the rest.
func (c *Catalog) Remove(names []string) int {
	if len(names) == 0 {
		return 0
	}

	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	removed := 0

	for _, e := range c.entries {
		if _, ok := drop[e.Name]; ok {
			removed++
			continue
		}

		kept = append(kept, e)
	}

	c.entries = kept

	return removed
}
