package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLabels(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{name: "plain array", body: `["official","cheat"]`, want: []string{"official", "cheat"}},
		{name: "double encoded", body: `"[\"unknown\"]"`, want: []string{"unknown"}},
		{name: "double encoded with spacing", body: " \"[\\\"official\\\", \\\"cheat\\\"]\"\n", want: []string{"official", "cheat"}},
		{name: "triple encoded", body: `"\"[\\\"cheat\\\"]\""`, want: []string{"cheat"}},
		{name: "empty array", body: `[]`, want: []string{}},
		{name: "arbitrary labels are kept", body: `["Official","pending review"]`, want: []string{"Official", "pending review"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeLabels([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLabels_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "object", body: []byte(`{"labels":["official"]}`)},
		{name: "string scalar", body: []byte(`"official"`)},
		{name: "number element", body: []byte(`["official",1]`)},
		{name: "null", body: []byte(`null`)},
		{name: "invalid json", body: []byte(`[official`)},
		{name: "empty body", body: []byte(``)},
		{name: "invalid utf-8", body: []byte{'[', '"', 0xff, '"', ']'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := DecodeLabels(tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrResponseFormat)
			assert.Nil(t, labels)
		})
	}
}
