package domain

import (
	"context"
	"log/slog"

	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// Engine ties the scanner, verifier and deleter to a single catalog.
type Engine interface {
	Scan(ctx context.Context, dir m.Path, progress ProgressFunc) (m.ScanReport, error)
	BeginVerification(ctx context.Context) (<-chan VerificationResult, error)
	DeleteSelected(ctx context.Context, names []string) (m.DeletionReport, error)
	Entries() []m.MapEntry
	Directory() m.Path
}

type engine struct {
	catalog  *Catalog
	scanner  DirectoryScanner
	verifier Verifier
	deleter  SelectionDeleter
}

// EngineConfig carries the tunables of an Engine.
type EngineConfig struct {
	Extensions    []string
	HashAlgorithm HashAlgorithm
}

// NewEngine wires a fresh catalog to the given adapters.
func NewEngine(fsAdapter adapter.MapFSAdapter, client adapter.TrustClient, cfg EngineConfig) Engine {
	catalog := NewCatalog()
	hasher := NewContentHasher(fsAdapter, cfg.HashAlgorithm)

	return &engine{
		catalog:  catalog,
		scanner:  NewDirectoryScanner(fsAdapter, hasher, cfg.Extensions),
		verifier: NewVerifier(catalog, client),
		deleter:  NewSelectionDeleter(catalog, fsAdapter),
	}
}

// Scan rebuilds the catalog from dir. Any pending verification is cancelled
// first; on failure the catalog is left empty.
func (e *engine) Scan(ctx context.Context, dir m.Path, progress ProgressFunc) (m.ScanReport, error) {
	e.verifier.Cancel()

	report, err := e.scanner.Scan(ctx, dir, progress)
	if err != nil {
		e.catalog.Replace(dir, nil)
		return report, err
	}

	generation := e.catalog.Replace(dir, report.Entries)
	slog.Debug("catalog replaced", "dir", dir, "generation", generation, "entries", len(report.Entries))

	return report, nil
}

// BeginVerification starts a verification round for the current catalog.
func (e *engine) BeginVerification(ctx context.Context) (<-chan VerificationResult, error) {
	return e.verifier.Begin(ctx)
}

// DeleteSelected deletes the named maps and drops the ones that are gone
// from the catalog.
func (e *engine) DeleteSelected(ctx context.Context, names []string) (m.DeletionReport, error) {
	report, err := e.deleter.Delete(ctx, names)

	if removed := e.catalog.Remove(report.Deleted()); removed > 0 {
		slog.Debug("removed deleted maps from catalog", "count", removed)
	}

	return report, err
}

// Entries returns the current catalog contents.
func (e *engine) Entries() []m.MapEntry {
	return e.catalog.Entries()
}

// Directory returns the directory of the current catalog.
func (e *engine) Directory() m.Path {
	return e.catalog.Directory()
}
