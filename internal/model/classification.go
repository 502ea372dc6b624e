package model

import (
	"encoding/json"
)

// ClassificationKind is the category a trust server assigns to a digest.
type ClassificationKind int

const (
	// Unset means no classification has been received for the entry.
	Unset ClassificationKind = iota
	// Official marks a map published by a known creator.
	Official
	// Unknown marks a map the trust database has never seen.
	Unknown
	// Cheat marks a map flagged as hacked or cheating content.
	Cheat
	// Other carries a label the client does not recognise.
	Other
)

// Wire labels understood by the trust server.
const (
	LabelOfficial = "official"
	LabelUnknown  = "unknown"
	LabelCheat    = "cheat"
)

// Classification pairs a kind with the raw server label.
type Classification struct {
	Kind  ClassificationKind
	Label string
}

// ParseClassification maps a raw server label to a Classification.
func ParseClassification(label string) Classification {
	switch label {
	case LabelOfficial:
		return Classification{Kind: Official, Label: label}
	case LabelUnknown:
		return Classification{Kind: Unknown, Label: label}
	case LabelCheat:
		return Classification{Kind: Cheat, Label: label}
	default:
		return Classification{Kind: Other, Label: label}
	}
}

// IsSet reports whether a label has been assigned.
func (c Classification) IsSet() bool {
	return c.Kind != Unset
}

func (c Classification) String() string {
	if c.Kind == Unset {
		return ""
	}

	return c.Label
}

// MarshalJSON renders the classification as its label, or null when unset.
func (c Classification) MarshalJSON() ([]byte, error) {
	if !c.IsSet() {
		return []byte("null"), nil
	}

	return json.Marshal(c.Label)
}

// MarshalYAML renders the classification as its label, or null when unset.
func (c Classification) MarshalYAML() (interface{}, error) {
	if !c.IsSet() {
		return nil, nil
	}

	return c.Label, nil
}
