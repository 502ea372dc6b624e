package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	return cmd, &out, &errOut
}

func sampleCatalog() []m.MapEntry {
	return []m.MapEntry{
		{
			Name:           "A.w3x",
			Path:           "/maps/A.w3x",
			Digest:         "0cc175b9c0f1b6a831c399e269772661",
			Classification: m.ParseClassification(m.LabelOfficial),
		},
		{
			Name:           "B.w3x",
			Path:           "/maps/B.w3x",
			Digest:         "92eb5ffee6ae2fec3ad71c777531578f",
			Classification: m.ParseClassification(m.LabelCheat),
		},
		{Name: "C.w3x", Path: "/maps/C.w3x", Digest: "4a8a08f09d37b73795649038408b5f33"},
		{Name: "D.w3x", Path: "/maps/D.w3x"},
	}
}

func TestSimpleUI_DisplayCatalog_Table(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd, FormatTable)

	require.NoError(t, ui.DisplayCatalog(context.Background(), "/maps", sampleCatalog()))

	output := out.String()
	for _, want := range []string{"/maps", "MAP", "DIGEST", "STATUS", "A.w3x", "0cc175b9c0f1", "official", "cheat", "unreadable", "TOTAL MAPS 4"} {
		assert.Contains(t, output, want)
	}

	assert.NotContains(t, output, "0cc175b9c0f1b6a831c399e269772661")
}

func TestSimpleUI_DisplayCatalog_JSON(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd, FormatJSON)

	require.NoError(t, ui.DisplayCatalog(context.Background(), "/maps", sampleCatalog()))

	var doc struct {
		Directory string                   `json:"directory"`
		Maps      []map[string]interface{} `json:"maps"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))

	assert.Equal(t, "/maps", doc.Directory)
	require.Len(t, doc.Maps, 4)
	assert.Equal(t, "official", doc.Maps[0]["classification"])
	assert.Nil(t, doc.Maps[2]["classification"])
	assert.NotContains(t, doc.Maps[3], "digest")
}

func TestSimpleUI_DisplayCatalog_EmptyJSON(t *testing.T) {
	cmd, out, _ := newTestCommand()

	require.NoError(t, NewSimpleUI(cmd, FormatJSON).DisplayCatalog(context.Background(), "/maps", nil))
	assert.Contains(t, out.String(), `"maps": []`)
}

func TestSimpleUI_DisplayCatalog_YAML(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd, FormatYAML)

	require.NoError(t, ui.DisplayCatalog(context.Background(), "/maps", sampleCatalog()[:2]))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "/maps", doc["directory"])

	maps, ok := doc["maps"].([]interface{})
	require.True(t, ok)
	require.Len(t, maps, 2)
	assert.Equal(t, "cheat", maps[1].(map[string]interface{})["classification"])
}

func TestSimpleUI_DisplayDeletionReport(t *testing.T) {
	report := m.DeletionReport{Results: []m.DeletionResult{
		{Name: "A.w3x", Path: "/maps/A.w3x"},
		{Name: "B.w3x", Path: "/maps/B.w3x", Missing: true},
		{Name: "C.w3x", Path: "/maps/C.w3x", Err: errors.New("permission denied")},
	}}

	t.Run("table", func(t *testing.T) {
		cmd, out, _ := newTestCommand()

		require.NoError(t, NewSimpleUI(cmd, FormatTable).DisplayDeletionReport(context.Background(), report))

		output := out.String()
		assert.Contains(t, output, "deleted")
		assert.Contains(t, output, "already removed")
		assert.Contains(t, output, "failed: permission denied")
	})

	t.Run("json", func(t *testing.T) {
		cmd, out, _ := newTestCommand()

		require.NoError(t, NewSimpleUI(cmd, FormatJSON).DisplayDeletionReport(context.Background(), report))

		var doc deletionDocument
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, []string{"A.w3x", "B.w3x"}, doc.Deleted)
		assert.Equal(t, map[string]string{"C.w3x": "permission denied"}, doc.Failed)
	})
}

func TestSimpleUI_ProgressAndNotices(t *testing.T) {
	ctx := context.Background()

	t.Run("table mode reports on stderr", func(t *testing.T) {
		cmd, out, errOut := newTestCommand()
		ui := NewSimpleUI(cmd, FormatTable)

		ui.DisplayScanProgress(ctx, m.ScanProgress{Index: 1, Total: 2, Name: "A.w3x"})
		ui.DisplayScanProgress(ctx, m.ScanProgress{Index: 2, Total: 2, Name: "B.w3x"})
		ui.DisplayVerificationStarted(ctx, 2)
		ui.Notify(ctx, errors.New("locked.w3x unreadable"))
		ui.Notify(ctx, nil)

		assert.Empty(t, out.String())
		assert.Equal(t, "Hashed 2 map(s)\nVerifying 2 map(s)...\nwarning: locked.w3x unreadable\n", errOut.String())
	})

	t.Run("document modes keep stderr quiet except warnings", func(t *testing.T) {
		cmd, _, errOut := newTestCommand()
		ui := NewSimpleUI(cmd, FormatJSON)

		ui.DisplayScanProgress(ctx, m.ScanProgress{Index: 1, Total: 1})
		ui.DisplayVerificationStarted(ctx, 1)
		assert.Empty(t, errOut.String())

		ui.Notify(ctx, errors.New("boom"))
		assert.True(t, strings.HasPrefix(errOut.String(), "warning: boom"))
	})
}

func TestSimpleUI_SelectForDeletion(t *testing.T) {
	cmd, _, _ := newTestCommand()
	ui := NewSimpleUI(cmd, "")

	names, err := ui.SelectForDeletion(context.Background(), sampleCatalog())
	assert.ErrorIs(t, err, ErrInteractiveUnavailable)
	assert.Nil(t, names)
}

func TestSimpleUI_Lifecycle(t *testing.T) {
	cmd, _, _ := newTestCommand()
	ui := NewSimpleUI(cmd, FormatTable)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithVerifyMode()))
	ui.Wait(ctx)
	ui.Close(ctx)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	assert.Error(t, ui.Start(cancelled))
	assert.Error(t, ui.DisplayCatalog(cancelled, "/maps", nil))
}

func TestNewUI(t *testing.T) {
	cmd, _, _ := newTestCommand()

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false, FormatTable))
	assert.IsType(t, &SimpleUI{}, NewUI(cmd, true, FormatJSON))
	assert.IsType(t, &TUI{}, NewUI(cmd, true, FormatTable))

	assert.False(t, IsTTY(&bytes.Buffer{}))
}
