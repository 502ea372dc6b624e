package domain

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// DefaultMapExtensions lists the file extensions treated as maps.
var DefaultMapExtensions = []string{".w3x"}

// ProgressFunc receives one notification per processed file.
type ProgressFunc func(progress m.ScanProgress)

// DirectoryScanner lists and hashes the map files directly inside a directory.
type DirectoryScanner interface {
	Scan(ctx context.Context, dir m.Path, progress ProgressFunc) (m.ScanReport, error)
}

type directoryScanner struct {
	fsAdapter       adapter.MapFSAdapter
	hasher          ContentHasher
	extensions      []string
	caseInsensitive bool
}

// NewDirectoryScanner builds a scanner matching the given extensions. An
// empty list falls back to DefaultMapExtensions.
func NewDirectoryScanner(fsAdapter adapter.MapFSAdapter, hasher ContentHasher, extensions []string) DirectoryScanner {
	return &directoryScanner{
		fsAdapter:       fsAdapter,
		hasher:          hasher,
		extensions:      normalizeExtensions(extensions),
		caseInsensitive: hostIsCaseInsensitive(),
	}
}

// Scan enumerates dir once and hashes every matching file in order.
// Unreadable files are kept in the report without a digest.
func (s *directoryScanner) Scan(ctx context.Context, dir m.Path, progress ProgressFunc) (m.ScanReport, error) {
	report := m.ScanReport{Directory: dir}

	candidates, err := s.listCandidates(ctx, dir)
	if err != nil {
		return report, err
	}

	if len(candidates) == 0 {
		slog.Info("no maps found", "dir", dir, "extensions", s.extensions)
		return report, &NoMapsFoundError{Dir: dir, Extensions: s.extensions}
	}

	entries := make([]m.MapEntry, 0, len(candidates))

	for i, entry := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		digest, hashErr := s.hasher.Hash(ctx, entry.Path)
		if hashErr != nil {
			slog.Warn("failed to hash map", "path", entry.Path, "error", hashErr)

			entry.HashErr = hashErr
			report.Unreadable = append(report.Unreadable, hashErr)
		} else {
			entry.Digest = digest
		}

		entries = append(entries, entry)

		if progress != nil {
			progress(m.ScanProgress{Index: i + 1, Total: len(candidates), Name: entry.Name})
		}
	}

	report.Entries = entries

	slog.Info("scan complete", "dir", dir, "maps", len(entries), "unreadable", len(report.Unreadable))

	return report, nil
}

func (s *directoryScanner) listCandidates(ctx context.Context, dir m.Path) ([]m.MapEntry, error) {
	info, err := s.fsAdapter.FileInfo(ctx, dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}

	if !info.IsDir() {
		return nil, &DirectoryAccessError{Dir: dir, Err: fs.ErrInvalid}
	}

	absDir, err := s.fsAdapter.AbsPath(ctx, dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}

	dirEntries, err := s.fsAdapter.ReadDir(ctx, dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: dir, Err: err}
	}

	var candidates []m.MapEntry

	for _, de := range dirEntries {
		if !s.matches(de.Name()) {
			continue
		}

		path := s.fsAdapter.JoinPath(string(absDir), de.Name())

		if !s.isRegular(ctx, de, path) {
			continue
		}

		candidates = append(candidates, m.MapEntry{Name: de.Name(), Path: path})
	}

	return candidates, nil
}

// isRegular accepts regular files and symlinks that resolve to one.
func (s *directoryScanner) isRegular(ctx context.Context, de fs.DirEntry, path m.Path) bool {
	if de.Type().IsRegular() {
		return true
	}

	if de.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := s.fsAdapter.FileInfo(ctx, path)
	if err != nil {
		slog.Debug("skipping dangling symlink", "path", path, "error", err)
		return false
	}

	return info.Mode().IsRegular()
}

func (s *directoryScanner) matches(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}

	for _, want := range s.extensions {
		if s.caseInsensitive && strings.EqualFold(ext, want) {
			return true
		}

		if ext == want {
			return true
		}
	}

	return false
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		ext = strings.TrimPrefix(ext, "*")

		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	if len(out) == 0 {
		return append([]string(nil), DefaultMapExtensions...)
	}

	return out
}

// hostIsCaseInsensitive reports whether the default filesystem of the host
// compares names case-insensitively.
func hostIsCaseInsensitive() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
