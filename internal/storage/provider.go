// Package storage defines the data-directory abstraction.
package storage

// Provider is the read-only interface for plaza data files.
type Provider interface {
	// Read returns the raw bytes of the file at path (relative to the data root).
	Read(path string) ([]byte, error)
	// List returns the names of .json files directly under dir (relative to
	// the data root), sorted ascending.
	List(dir string) ([]string, error)
}
