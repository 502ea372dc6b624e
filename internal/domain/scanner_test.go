package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

func newLocalScanner(t *testing.T, extensions ...string) DirectoryScanner {
	t.Helper()

	fsAdapter := adapter.NewLocalMapFSAdapter()

	return NewDirectoryScanner(fsAdapter, newMD5Hasher(t, fsAdapter), extensions)
}

func TestDirectoryScanner_Scan(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes matching files in directory order", func(t *testing.T) {
		dir := t.TempDir()
		writeMap(t, dir, "B.w3x", "bbb")
		writeMap(t, dir, "A.w3x", "")
		writeMap(t, dir, "notes.txt", "ignored")

		var progress []m.ScanProgress

		report, err := newLocalScanner(t).Scan(ctx, m.Path(dir), func(p m.ScanProgress) {
			progress = append(progress, p)
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"A.w3x", "B.w3x"}, entryNames(report.Entries))
		assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", report.Entries[0].Digest)
		assert.False(t, report.Entries[0].Classification.IsSet())
		assert.True(t, filepath.IsAbs(string(report.Entries[1].Path)))
		assert.Empty(t, report.Unreadable)

		require.Len(t, progress, 2)
		assert.Equal(t, m.ScanProgress{Index: 2, Total: 2, Name: "B.w3x"}, progress[1])
	})

	t.Run("does not descend into subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		writeMap(t, dir, "top.w3x", "top")

		nested := filepath.Join(dir, "nested.w3x")
		require.NoError(t, os.Mkdir(nested, 0o755))
		writeMap(t, nested, "deep.w3x", "deep")

		report, err := newLocalScanner(t).Scan(ctx, m.Path(dir), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"top.w3x"}, entryNames(report.Entries))
	})

	t.Run("no matching files", func(t *testing.T) {
		dir := t.TempDir()
		writeMap(t, dir, "readme.md", "")
		writeMap(t, dir, "map.w3m", "")

		report, err := newLocalScanner(t).Scan(ctx, m.Path(dir), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoMapsFound)
		assert.Empty(t, report.Entries)
	})

	t.Run("custom extensions", func(t *testing.T) {
		dir := t.TempDir()
		writeMap(t, dir, "classic.w3m", "")
		writeMap(t, dir, "frozen.w3x", "")

		report, err := newLocalScanner(t, "w3m", "*.w3x").Scan(ctx, m.Path(dir), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"classic.w3m", "frozen.w3x"}, entryNames(report.Entries))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := newLocalScanner(t).Scan(ctx, m.Path(filepath.Join(t.TempDir(), "nope")), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDirectoryAccess)

		var accessErr *DirectoryAccessError
		require.True(t, errors.As(err, &accessErr))
		assert.ErrorIs(t, accessErr, os.ErrNotExist)
	})

	t.Run("path is a file", func(t *testing.T) {
		path := writeMap(t, t.TempDir(), "single.w3x", "")

		_, err := newLocalScanner(t).Scan(ctx, path, nil)
		assert.ErrorIs(t, err, ErrDirectoryAccess)
	})

	t.Run("unreadable file is kept without digest", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("file permissions are not enforced")
		}

		dir := t.TempDir()
		writeMap(t, dir, "ok.w3x", "ok")
		locked := writeMap(t, dir, "locked.w3x", "secret")
		require.NoError(t, os.Chmod(string(locked), 0o000))

		t.Cleanup(func() { _ = os.Chmod(string(locked), 0o600) })

		report, err := newLocalScanner(t).Scan(ctx, m.Path(dir), nil)
		require.NoError(t, err)
		require.Len(t, report.Entries, 2)

		assert.Equal(t, "locked.w3x", report.Entries[0].Name)
		assert.False(t, report.Entries[0].Hashed())
		assert.ErrorIs(t, report.Entries[0].HashErr, ErrFileUnreadable)
		assert.True(t, report.Entries[1].Hashed())
		require.Len(t, report.Unreadable, 1)
	})

	t.Run("symlink to a map is followed", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}

		dir := t.TempDir()
		target := writeMap(t, t.TempDir(), "real.w3x", "")
		require.NoError(t, os.Symlink(string(target), filepath.Join(dir, "link.w3x")))
		require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.w3x")))

		report, err := newLocalScanner(t).Scan(ctx, m.Path(dir), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"link.w3x"}, entryNames(report.Entries))
		assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", report.Entries[0].Digest)
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		writeMap(t, dir, "a.w3x", "")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := newLocalScanner(t).Scan(cancelled, m.Path(dir), nil)
		assert.Error(t, err)
	})
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Equal(t, DefaultMapExtensions, normalizeExtensions(nil))
	assert.Equal(t, DefaultMapExtensions, normalizeExtensions([]string{" ", ""}))
	assert.Equal(t, []string{".w3x", ".w3m"}, normalizeExtensions([]string{"w3x", "*.w3m"}))
}
