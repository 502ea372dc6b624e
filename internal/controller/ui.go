// Package controller provides the user interfaces for displaying map
// verification results.
package controller

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// ErrInteractiveUnavailable is returned by SelectForDeletion on UIs that cannot prompt.
var ErrInteractiveUnavailable = errors.New("interactive selection requires a terminal")

// ErrSelectionAborted is returned when the user leaves the picker without confirming.
var ErrSelectionAborted = errors.New("selection aborted")

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeVerify
	ModeDelete
)

func (s StartMode) String() string {
	switch s {
	case ModeScan:
		return "scan"
	case ModeVerify:
		return "verify"
	case ModeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to scan mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithVerifyMode sets the UI to verification mode.
func WithVerifyMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeVerify
	}
}

// WithDeleteMode sets the UI to deletion mode.
func WithDeleteMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDelete
	}
}

func applyStartOptions(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeScan}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying scans, verification and deletion.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayScanProgress(ctx context.Context, progress m.ScanProgress)
	DisplayCatalog(ctx context.Context, dir m.Path, entries []m.MapEntry) error
	DisplayVerificationStarted(ctx context.Context, digests int)
	DisplayDeletionReport(ctx context.Context, report m.DeletionReport) error
	Notify(ctx context.Context, err error)
	SelectForDeletion(ctx context.Context, entries []m.MapEntry) ([]string, error)
}

// NewUI picks the interactive UI for terminals with table output and the
// simple UI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool, format OutputFormat) UI {
	if useTTY && format == FormatTable {
		return NewTUI(cmd.OutOrStdout(), cmd.InOrStdin())
	}

	return NewSimpleUI(cmd, format)
}

// IsTTY reports whether w is attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
