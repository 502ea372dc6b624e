package domain

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

var errNotInCatalog = errors.New("not in catalog")

// SelectionDeleter removes the map files chosen by the user.
type SelectionDeleter interface {
	Delete(ctx context.Context, names []string) (m.DeletionReport, error)
}

type selectionDeleter struct {
	catalog   *Catalog
	fsAdapter adapter.MapFSAdapter
}

// NewSelectionDeleter resolves names through catalog and deletes via fsAdapter.
func NewSelectionDeleter(catalog *Catalog, fsAdapter adapter.MapFSAdapter) SelectionDeleter {
	return &selectionDeleter{catalog: catalog, fsAdapter: fsAdapter}
}

// Delete attempts every selected name and records per-file outcomes. A file
// that is already gone counts as deleted. It only fails as a whole for an
// empty selection or a cancelled context.
func (d *selectionDeleter) Delete(ctx context.Context, names []string) (m.DeletionReport, error) {
	if len(names) == 0 {
		return m.DeletionReport{}, ErrNoSelection
	}

	report := m.DeletionReport{Results: make([]m.DeletionResult, 0, len(names))}
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}

		report.Results = append(report.Results, d.deleteOne(ctx, name))
	}

	slog.Info("deletion batch complete", "selected", len(names), "failed", len(report.Failed()))

	return report, nil
}

func (d *selectionDeleter) deleteOne(ctx context.Context, name string) m.DeletionResult {
	entry, ok := d.catalog.Lookup(name)
	if !ok {
		slog.Warn("selected map not in catalog", "name", name)
		return m.DeletionResult{Name: name, Err: &DeletionError{Name: name, Err: errNotInCatalog}}
	}

	result := m.DeletionResult{Name: name, Path: entry.Path}

	err := d.fsAdapter.Remove(ctx, entry.Path)

	switch {
	case err == nil:
		slog.Info("deleted map", "path", entry.Path)
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("map already removed", "path", entry.Path)

		result.Missing = true
	default:
		slog.Error("failed to delete map", "path", entry.Path, "error", err)

		result.Err = &DeletionError{Name: name, Path: entry.Path, Err: err}
	}

	return result
}
