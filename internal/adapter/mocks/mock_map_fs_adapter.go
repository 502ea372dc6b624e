package mocks

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/mock"
	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// MockMapFSAdapter is a mock implementation of adapter.MapFSAdapter.
type MockMapFSAdapter struct {
	mock.Mock
}

// NewMockMapFSAdapter creates a MockMapFSAdapter whose expectations are
// asserted on test cleanup.
func NewMockMapFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMapFSAdapter {
	fsAdapter := &MockMapFSAdapter{}
	fsAdapter.Mock.Test(t)

	t.Cleanup(func() { fsAdapter.AssertExpectations(t) })

	return fsAdapter
}

var _ adapter.MapFSAdapter = (*MockMapFSAdapter)(nil)

// ReadDir provides a mock function.
func (_m *MockMapFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]fs.DirEntry, error) {
	ret := _m.Called(ctx, dir)

	var entries []fs.DirEntry
	if ret.Get(0) != nil {
		entries = ret.Get(0).([]fs.DirEntry)
	}

	return entries, ret.Error(1)
}

// FileInfo provides a mock function.
func (_m *MockMapFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	ret := _m.Called(ctx, path)

	var info os.FileInfo
	if ret.Get(0) != nil {
		info = ret.Get(0).(os.FileInfo)
	}

	return info, ret.Error(1)
}

// Open provides a mock function.
func (_m *MockMapFSAdapter) Open(ctx context.Context, path m.Path) (io.ReadCloser, error) {
	ret := _m.Called(ctx, path)

	var rc io.ReadCloser
	if ret.Get(0) != nil {
		rc = ret.Get(0).(io.ReadCloser)
	}

	return rc, ret.Error(1)
}

// Remove provides a mock function.
func (_m *MockMapFSAdapter) Remove(ctx context.Context, path m.Path) error {
	ret := _m.Called(ctx, path)
	return ret.Error(0)
}

// AbsPath provides a mock function.
func (_m *MockMapFSAdapter) AbsPath(ctx context.Context, path m.Path) (m.Path, error) {
	ret := _m.Called(ctx, path)
	return ret.Get(0).(m.Path), ret.Error(1)
}

// JoinPath joins elements like the local adapter so tests only stub I/O.
func (_m *MockMapFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
