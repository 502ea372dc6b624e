package domain

import (
	"os"
	"path/filepath"
	"testing"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

func writeMap(t *testing.T, dir, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return m.Path(path)
}

func entryNames(entries []m.MapEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}

	return names
}
