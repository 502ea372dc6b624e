// Package model defines the data structures for map verification.
package model

// Path represents a file system path.
type Path string

// MapEntry is a single map file discovered by a directory scan.
type MapEntry struct {
	Name           string         `json:"name" yaml:"name"`
	Path           Path           `json:"path" yaml:"path"`
	Digest         string         `json:"digest,omitempty" yaml:"digest,omitempty"` // empty when the file could not be hashed
	Classification Classification `json:"classification" yaml:"classification"`
	HashErr        error          `json:"-" yaml:"-"`
}

// Hashed reports whether the entry carries a digest and may be sent for verification.
func (e MapEntry) Hashed() bool {
	return e.Digest != ""
}

// ScanProgress is emitted after each file of a scan has been processed.
type ScanProgress struct {
	Index int
	Total int
	Name  string
}

// ScanReport is the outcome of a single directory scan.
type ScanReport struct {
	Directory  Path
	Entries    []MapEntry
	Unreadable []error
}
