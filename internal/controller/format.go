package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// OutputFormat selects how the catalog is rendered by the simple UI.
type OutputFormat string

// Supported output formats.
const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", value)
	}
}

// catalogDocument is the machine-readable rendering of a catalog.
type catalogDocument struct {
	Directory m.Path       `json:"directory" yaml:"directory"`
	Maps      []m.MapEntry `json:"maps" yaml:"maps"`
}

type deletionDocument struct {
	Deleted []string          `json:"deleted" yaml:"deleted"`
	Failed  map[string]string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

func encodeDocument(w io.Writer, format OutputFormat, doc interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(doc); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a document format", format)
	}
}

func newDeletionDocument(report m.DeletionReport) deletionDocument {
	doc := deletionDocument{Deleted: report.Deleted()}

	for _, res := range report.Failed() {
		if doc.Failed == nil {
			doc.Failed = map[string]string{}
		}

		doc.Failed[res.Name] = res.Err.Error()
	}

	return doc
}
