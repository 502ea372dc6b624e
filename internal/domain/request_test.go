package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

func TestBuildPayload(t *testing.T) {
	tests := []struct {
		name    string
		digests []string
		want    string
	}{
		{name: "empty", digests: nil, want: ""},
		{name: "single", digests: []string{"a1"}, want: "a1"},
		{name: "ordered", digests: []string{"a1", "b2", "c3"}, want: "a1,b2,c3"},
		{name: "skips empty digests", digests: []string{"", "a1", "", "b2"}, want: "a1,b2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPayload(tt.digests)
			assert.Equal(t, tt.want, got)

			if len(got) > 0 {
				assert.False(t, strings.HasSuffix(got, payloadDelimiter))
				assert.Equal(t, len(strings.Split(got, payloadDelimiter))-1, strings.Count(got, payloadDelimiter))
			}
		})
	}
}

func TestVerificationRequest_Resolve(t *testing.T) {
	req := VerificationRequest{
		Generation: 3,
		Digests:    []string{"d1", "d2", "d3"},
		Entries: []m.MapEntry{
			{Name: "A.w3x", Digest: "d1"},
			{Name: "B.w3x", Digest: "d2"},
			{Name: "C.w3x", Digest: "d3"},
		},
	}

	t.Run("labels apply by position", func(t *testing.T) {
		resolved := req.Resolve([]string{"official", "cheat", "unknown"})

		assert.Equal(t, uint64(3), resolved.Generation)
		assert.Equal(t, m.Official, resolved.Entries[0].Classification.Kind)
		assert.Equal(t, m.Cheat, resolved.Entries[1].Classification.Kind)
		assert.Equal(t, m.Unknown, resolved.Entries[2].Classification.Kind)
	})

	t.Run("short label list leaves the tail unset", func(t *testing.T) {
		resolved := req.Resolve([]string{"official"})

		assert.True(t, resolved.Entries[0].Classification.IsSet())
		assert.False(t, resolved.Entries[1].Classification.IsSet())
		assert.False(t, resolved.Entries[2].Classification.IsSet())
	})

	t.Run("extra labels are ignored", func(t *testing.T) {
		resolved := req.Resolve([]string{"official", "official", "official", "cheat"})
		assert.Len(t, resolved.Entries, 3)
	})

	t.Run("snapshot passed in is untouched", func(t *testing.T) {
		_ = req.Resolve([]string{"cheat", "cheat", "cheat"})

		for _, e := range req.Entries {
			assert.False(t, e.Classification.IsSet())
		}
	})

	assert.Equal(t, "d1,d2,d3", req.Payload())
}
