package domain

import (
	"context"
	"crypto/md5" // #nosec G501 - the trust database is keyed by MD5, not used for security
	"crypto/sha1" // #nosec G505 - optional digest for alternate trust databases
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// DefaultHashAlgorithm is the digest the trust database is keyed by.
const DefaultHashAlgorithm = "md5"

// hashChunkSize is the fixed read size used when streaming file content.
const hashChunkSize = 4096

// HashAlgorithm names a digest function.
type HashAlgorithm struct {
	Name    string
	NewFunc func() hash.Hash
}

// LookupHashAlgorithm returns the algorithm registered under name.
func LookupHashAlgorithm(name string) (HashAlgorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md5":
		return HashAlgorithm{Name: "md5", NewFunc: md5.New}, nil
	case "sha1":
		return HashAlgorithm{Name: "sha1", NewFunc: sha1.New}, nil
	case "sha256":
		return HashAlgorithm{Name: "sha256", NewFunc: sha256.New}, nil
	default:
		return HashAlgorithm{}, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// ContentHasher computes content digests of map files.
type ContentHasher interface {
	Hash(ctx context.Context, path m.Path) (string, error)
}

type contentHasher struct {
	fsAdapter adapter.MapFSAdapter
	algorithm HashAlgorithm
}

// NewContentHasher builds a hasher that reads through fsAdapter.
func NewContentHasher(fsAdapter adapter.MapFSAdapter, algorithm HashAlgorithm) ContentHasher {
	if algorithm.NewFunc == nil {
		algorithm = HashAlgorithm{Name: "md5", NewFunc: md5.New}
	}

	return &contentHasher{fsAdapter: fsAdapter, algorithm: algorithm}
}

// Hash streams the file in fixed-size chunks and returns the lowercase hex digest.
func (h *contentHasher) Hash(ctx context.Context, path m.Path) (string, error) {
	f, err := h.fsAdapter.Open(ctx, path)
	if err != nil {
		return "", &FileUnreadableError{Path: path, Err: err}
	}

	defer func() {
		_ = f.Close()
	}()

	digest := h.algorithm.NewFunc()
	buf := make([]byte, hashChunkSize)

	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			_, _ = digest.Write(buf[:n])
		}

		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return "", &FileUnreadableError{Path: path, Err: readErr}
		}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
