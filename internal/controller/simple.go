package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	format OutputFormat
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, format OutputFormat) *SimpleUI {
	if format == "" {
		format = FormatTable
	}

	return &SimpleUI{cmd: cmd, format: format}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayScanProgress reports the end of a scan on stderr in table mode.
func (s *SimpleUI) DisplayScanProgress(ctx context.Context, progress m.ScanProgress) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.format != FormatTable || progress.Index != progress.Total {
		return
	}

	s.errorf("Hashed %d map(s)\n", progress.Total)
}

// DisplayCatalog prints the catalog as a table or as a json/yaml document.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, dir m.Path, entries []m.MapEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format != FormatTable {
		if entries == nil {
			entries = []m.MapEntry{}
		}

		return encodeDocument(s.cmd.OutOrStdout(), s.format, catalogDocument{Directory: dir, Maps: entries})
	}

	s.printf("\n%s\n%s", dir, renderCatalogTable(entries))

	return nil
}

func renderCatalogTable(entries []m.MapEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Map", "Digest", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	counts := map[m.ClassificationKind]int{}

	for _, entry := range entries {
		table.Append([]string{entry.Name, shortDigest(entry.Digest), renderLabel(entry)})
		counts[entry.Classification.Kind]++
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Maps %d", len(entries)),
		fmt.Sprintf("official %d / cheat %d", counts[m.Official], counts[m.Cheat]),
		fmt.Sprintf("unknown %d", counts[m.Unknown]),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayVerificationStarted announces an outgoing verification request.
func (s *SimpleUI) DisplayVerificationStarted(ctx context.Context, digests int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if s.format != FormatTable {
		return
	}

	s.errorf("Verifying %d map(s)...\n", digests)
}

// DisplayDeletionReport prints the per-file outcome of a deletion batch.
func (s *SimpleUI) DisplayDeletionReport(ctx context.Context, report m.DeletionReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format != FormatTable {
		return encodeDocument(s.cmd.OutOrStdout(), s.format, newDeletionDocument(report))
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Map", "Result"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, res := range report.Results {
		table.Append([]string{res.Name, deletionOutcome(res)})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func deletionOutcome(res m.DeletionResult) string {
	switch {
	case res.Err != nil:
		return "failed: " + res.Err.Error()
	case res.Missing:
		return "already removed"
	default:
		return "deleted"
	}
}

// Notify prints a non-fatal error to stderr.
func (s *SimpleUI) Notify(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	s.errorf("warning: %v\n", err)
}

// SelectForDeletion is not supported without a terminal.
func (s *SimpleUI) SelectForDeletion(ctx context.Context, _ []m.MapEntry) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return nil, ErrInteractiveUnavailable
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
