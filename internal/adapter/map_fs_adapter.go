// Package adapter contains infrastructure adapters for the mapdispel CLI.
package adapter

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// MapFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning a map directory. It hides direct `os` access so the
// engine can be tested without touching the disk.
type MapFSAdapter interface {
	// ReadDir lists the direct children of dir, sorted by name.
	ReadDir(ctx context.Context, dir m.Path) ([]fs.DirEntry, error)

	// FileInfo returns metadata for path, following symlinks.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// Open opens a file for streaming reads.
	Open(ctx context.Context, path m.Path) (io.ReadCloser, error)

	// Remove deletes a single file.
	Remove(ctx context.Context, path m.Path) error

	// AbsPath resolves path against the working directory.
	AbsPath(ctx context.Context, path m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalMapFSAdapter is the os-backed MapFSAdapter.
type LocalMapFSAdapter struct{}

// NewLocalMapFSAdapter constructs a LocalMapFSAdapter instance ready to be
// wired into the engine.
func NewLocalMapFSAdapter() *LocalMapFSAdapter {
	return &LocalMapFSAdapter{}
}

// ReadDir lists the direct children of dir.
func (a *LocalMapFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadDir(string(dir))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalMapFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// Open opens the file at path for reading.
func (a *LocalMapFSAdapter) Open(ctx context.Context, path m.Path) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from a listing of the user-selected directory
	return os.Open(string(path))
}

// Remove deletes the file at path.
func (a *LocalMapFSAdapter) Remove(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Remove(string(path))
}

// AbsPath returns an absolute representation of path.
func (a *LocalMapFSAdapter) AbsPath(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalMapFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
