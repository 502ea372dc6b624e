package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxUnwrapDepth bounds how many layers of string encoding are peeled off a
// response body before it is parsed as an array.
const maxUnwrapDepth = 4

// DecodeLabels turns a trust-server body into the ordered classification
// labels. Bodies that arrive as a JSON string wrapping the array are unwrapped
// first.
func DecodeLabels(body []byte) ([]string, error) {
	if !utf8.Valid(body) {
		return nil, &ResponseFormatError{Body: string(body), Reason: "body is not valid UTF-8"}
	}

	text := unwrapStringEncoding(string(body))

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &ResponseFormatError{Body: string(body), Reason: fmt.Sprintf("expected a JSON array: %v", err)}
	}

	if raw == nil {
		return nil, &ResponseFormatError{Body: string(body), Reason: "expected a JSON array, got null"}
	}

	labels := make([]string, len(raw))

	for i, item := range raw {
		if err := json.Unmarshal(item, &labels[i]); err != nil {
			return nil, &ResponseFormatError{
				Body:   string(body),
				Reason: fmt.Sprintf("element %d is not a string: %s", i, bytes.TrimSpace(item)),
			}
		}
	}

	return labels, nil
}

// unwrapStringEncoding peels JSON string literals off text until it no longer
// starts with a quote. Literals that are not strictly valid JSON fall back to
// stripping escaped quotes and the surrounding quote pair.
func unwrapStringEncoding(text string) string {
	text = strings.TrimSpace(text)

	for range maxUnwrapDepth {
		if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
			return text
		}

		var inner string
		if err := json.Unmarshal([]byte(text), &inner); err == nil {
			text = strings.TrimSpace(inner)
			continue
		}

		text = strings.ReplaceAll(text[1:len(text)-1], `\"`, `"`)
		text = strings.TrimSpace(text)
	}

	return text
}
