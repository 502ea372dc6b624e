package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "yml", want: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestPlainLabel(t *testing.T) {
	assert.Equal(t, "unreadable", plainLabel(m.MapEntry{Name: "a"}))
	assert.Equal(t, "-", plainLabel(m.MapEntry{Name: "a", Digest: "d"}))
	assert.Equal(t, "pending", plainLabel(m.MapEntry{Digest: "d", Classification: m.ParseClassification("pending")}))
	assert.Equal(t, "cheat", plainLabel(m.MapEntry{Digest: "d", Classification: m.ParseClassification("cheat")}))
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "", shortDigest(""))
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "d41d8cd98f00", shortDigest("d41d8cd98f00b204e9800998ecf8427e"))
}

func TestStartMode(t *testing.T) {
	assert.Equal(t, ModeScan, applyStartOptions(nil).mode)
	assert.Equal(t, ModeDelete, applyStartOptions([]StartOption{WithVerifyMode(), WithDeleteMode()}).mode)
	assert.Equal(t, "verify", ModeVerify.String())
	assert.Equal(t, "unknown", StartMode(42).String())
}
