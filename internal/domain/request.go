package domain

import (
	"strings"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// payloadDelimiter separates digests in the request payload.
const payloadDelimiter = ","

// VerificationRequest is an immutable snapshot of the hashed catalog entries
// at the moment a verification is issued. Digests[i] belongs to Entries[i].
type VerificationRequest struct {
	Generation uint64
	Digests    []string
	Entries    []m.MapEntry
}

// Payload returns the wire payload for the request.
func (r VerificationRequest) Payload() string {
	return BuildPayload(r.Digests)
}

// BuildPayload joins digests in order with no trailing delimiter. Empty
// digests are skipped so an un-hashed entry can never reach the wire.
func BuildPayload(digests []string) string {
	var b strings.Builder

	for _, d := range digests {
		if d == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString(payloadDelimiter)
		}

		b.WriteString(d)
	}

	return b.String()
}

// Resolve applies labels to the snapshot by position. Labels past the end of
// the snapshot are ignored; entries past the end of labels stay unset.
func (r VerificationRequest) Resolve(labels []string) VerificationRequest {
	resolved := VerificationRequest{
		Generation: r.Generation,
		Digests:    r.Digests,
		Entries:    append([]m.MapEntry(nil), r.Entries...),
	}

	n := min(len(labels), len(resolved.Entries))
	for i := range n {
		resolved.Entries[i].Classification = m.ParseClassification(labels[i])
	}

	return resolved
}
