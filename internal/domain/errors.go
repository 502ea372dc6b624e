package domain

import (
	"errors"
	"fmt"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// Sentinel errors for the verification engine. Typed errors below wrap them
// with per-operation context and match them through errors.Is.
var (
	ErrDirectoryAccess      = errors.New("map directory is not accessible")
	ErrNoMapsFound          = errors.New("no maps found in directory")
	ErrFileUnreadable       = errors.New("map file is unreadable")
	ErrTransport            = errors.New("verification request failed")
	ErrResponseFormat       = errors.New("malformed verification response")
	ErrNoSelection          = errors.New("no maps were selected for deletion")
	ErrDeletion             = errors.New("failed to delete map")
	ErrVerificationInFlight = errors.New("a verification is already in progress")
	ErrStaleVerification    = errors.New("catalog was rebuilt while verification was in flight")
)

// DirectoryAccessError reports a scan target that cannot be listed as a directory.
type DirectoryAccessError struct {
	Dir m.Path
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDirectoryAccess, e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// Is matches ErrDirectoryAccess.
func (e *DirectoryAccessError) Is(target error) bool { return target == ErrDirectoryAccess }

// NoMapsFoundError reports a scan that matched no files.
type NoMapsFoundError struct {
	Dir        m.Path
	Extensions []string
}

func (e *NoMapsFoundError) Error() string {
	return fmt.Sprintf("%s: %s (extensions %v)", ErrNoMapsFound, e.Dir, e.Extensions)
}

// Is matches ErrNoMapsFound.
func (e *NoMapsFoundError) Is(target error) bool { return target == ErrNoMapsFound }

// FileUnreadableError reports a single file that could not be hashed.
type FileUnreadableError struct {
	Path m.Path
	Err  error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFileUnreadable, e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() error { return e.Err }

// Is matches ErrFileUnreadable.
func (e *FileUnreadableError) Is(target error) bool { return target == ErrFileUnreadable }

// TransportError reports a failed round-trip to the trust server.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransport, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ResponseFormatError reports a body that did not decode to a JSON array of strings.
type ResponseFormatError struct {
	Body   string
	Reason string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrResponseFormat, e.Reason)
}

// Is matches ErrResponseFormat.
func (e *ResponseFormatError) Is(target error) bool { return target == ErrResponseFormat }

// DeletionError reports a single selected map that could not be deleted.
type DeletionError struct {
	Name string
	Path m.Path
	Err  error
}

func (e *DeletionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %s: %v", ErrDeletion, e.Name, e.Err)
	}

	return fmt.Sprintf("%s %s (%s): %v", ErrDeletion, e.Name, e.Path, e.Err)
}

func (e *DeletionError) Unwrap() error { return e.Err }

// Is matches ErrDeletion.
func (e *DeletionError) Is(target error) bool { return target == ErrDeletion }
